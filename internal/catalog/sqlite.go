package catalog

// sqliteCatalog renders statements for SQLite 3.24 or newer, the first
// release with INSERT ... ON CONFLICT DO UPDATE. Booleans are stored as 0/1.
type sqliteCatalog struct{}

var _ Catalog = sqliteCatalog{}

func (sqliteCatalog) Dialect() Dialect { return SQLite }

func (sqliteCatalog) Schema() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS rooms (room_id TEXT NOT NULL, is_stripped INTEGER NOT NULL, room_info TEXT NOT NULL, PRIMARY KEY (room_id, is_stripped))",
		"CREATE TABLE IF NOT EXISTS room_members (room_id TEXT NOT NULL, user_id TEXT NOT NULL, is_stripped INTEGER NOT NULL, member_event TEXT NOT NULL, displayname TEXT, PRIMARY KEY (room_id, user_id, is_stripped))",
		"CREATE INDEX IF NOT EXISTS room_members_displayname_idx ON room_members (room_id, displayname)",
		"CREATE TABLE IF NOT EXISTS room_member_profiles (room_id TEXT NOT NULL, user_id TEXT NOT NULL, profile TEXT NOT NULL, PRIMARY KEY (room_id, user_id))",
		"CREATE TABLE IF NOT EXISTS room_state (room_id TEXT NOT NULL, event_type TEXT NOT NULL, state_key TEXT NOT NULL, is_stripped INTEGER NOT NULL, state_event TEXT NOT NULL, PRIMARY KEY (room_id, event_type, state_key, is_stripped))",
		"CREATE TABLE IF NOT EXISTS account_data (room_id TEXT NOT NULL DEFAULT '', event_type TEXT NOT NULL, account_data TEXT NOT NULL, PRIMARY KEY (room_id, event_type))",
		"CREATE TABLE IF NOT EXISTS presence (user_id TEXT NOT NULL PRIMARY KEY, presence TEXT NOT NULL)",
		"CREATE TABLE IF NOT EXISTS receipts (room_id TEXT NOT NULL, event_id TEXT NOT NULL, receipt_type TEXT NOT NULL, user_id TEXT NOT NULL, receipt TEXT NOT NULL, PRIMARY KEY (room_id, event_id, receipt_type, user_id))",
	}
}

func (sqliteCatalog) RoomRemove() []string {
	return []string{
		"DELETE FROM room_members WHERE room_id = ?",
		"DELETE FROM room_member_profiles WHERE room_id = ?",
		"DELETE FROM room_state WHERE room_id = ?",
		"DELETE FROM account_data WHERE room_id = ?",
		"DELETE FROM receipts WHERE room_id = ?",
		"DELETE FROM rooms WHERE room_id = ?",
	}
}

func (sqliteCatalog) RoomUpsert() string {
	return "INSERT INTO rooms (room_id, is_stripped, room_info) VALUES (?, ?, ?) ON CONFLICT (room_id, is_stripped) DO UPDATE SET room_info = excluded.room_info"
}

func (sqliteCatalog) RoomLoad() string {
	return "SELECT room_info FROM rooms WHERE room_id = ? AND is_stripped = ?"
}

func (sqliteCatalog) MemberUpsert() string {
	return "INSERT INTO room_members (room_id, user_id, is_stripped, member_event, displayname) VALUES (?, ?, ?, ?, ?) ON CONFLICT (room_id, user_id, is_stripped) DO UPDATE SET member_event = excluded.member_event, displayname = excluded.displayname"
}

func (sqliteCatalog) MemberLoad() string {
	return "SELECT member_event FROM room_members WHERE room_id = ? AND user_id = ? AND is_stripped = ?"
}

func (sqliteCatalog) MemberProfileUpsert() string {
	return "INSERT INTO room_member_profiles (room_id, user_id, profile) VALUES (?, ?, ?) ON CONFLICT (room_id, user_id) DO UPDATE SET profile = excluded.profile"
}

func (sqliteCatalog) MemberProfileLoad() string {
	return "SELECT profile FROM room_member_profiles WHERE room_id = ? AND user_id = ?"
}

func (sqliteCatalog) StateUpsert() string {
	return "INSERT INTO room_state (room_id, event_type, state_key, is_stripped, state_event) VALUES (?, ?, ?, ?, ?) ON CONFLICT (room_id, event_type, state_key, is_stripped) DO UPDATE SET state_event = excluded.state_event"
}

func (sqliteCatalog) StateLoad() string {
	return "SELECT state_event FROM room_state WHERE room_id = ? AND event_type = ? AND state_key = ? AND is_stripped = 0"
}

func (sqliteCatalog) StrippedStateLoad() string {
	return "SELECT state_event FROM room_state WHERE room_id = ? AND event_type = ? AND state_key = ? AND is_stripped = 1"
}

func (sqliteCatalog) AccountDataUpsert() string {
	return "INSERT INTO account_data (room_id, event_type, account_data) VALUES (COALESCE(?, ''), ?, ?) ON CONFLICT (room_id, event_type) DO UPDATE SET account_data = excluded.account_data"
}

func (sqliteCatalog) AccountDataLoad() string {
	return "SELECT account_data FROM account_data WHERE room_id = COALESCE(?, '') AND event_type = ?"
}

func (sqliteCatalog) PresenceUpsert() string {
	return "INSERT INTO presence (user_id, presence) VALUES (?, ?) ON CONFLICT (user_id) DO UPDATE SET presence = excluded.presence"
}

func (sqliteCatalog) PresenceLoad() string {
	return "SELECT presence FROM presence WHERE user_id = ?"
}

func (sqliteCatalog) ReceiptUpsert() string {
	return "INSERT INTO receipts (room_id, event_id, receipt_type, user_id, receipt) VALUES (?, ?, ?, ?, ?) ON CONFLICT (room_id, event_id, receipt_type, user_id) DO UPDATE SET receipt = excluded.receipt"
}

func (sqliteCatalog) ReceiptLoad() string {
	return "SELECT receipt FROM receipts WHERE room_id = ? AND event_id = ? AND receipt_type = ? AND user_id = ?"
}
