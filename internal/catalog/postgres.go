package catalog

// postgresCatalog renders statements for PostgreSQL 9.5 or newer. Payload
// columns are JSONB and placeholders are numbered.
type postgresCatalog struct{}

var _ Catalog = postgresCatalog{}

func (postgresCatalog) Dialect() Dialect { return Postgres }

func (postgresCatalog) Schema() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS rooms (room_id TEXT NOT NULL, is_stripped BOOLEAN NOT NULL, room_info JSONB NOT NULL, PRIMARY KEY (room_id, is_stripped))",
		"CREATE TABLE IF NOT EXISTS room_members (room_id TEXT NOT NULL, user_id TEXT NOT NULL, is_stripped BOOLEAN NOT NULL, member_event JSONB NOT NULL, displayname TEXT, PRIMARY KEY (room_id, user_id, is_stripped))",
		"CREATE INDEX IF NOT EXISTS room_members_displayname_idx ON room_members (room_id, displayname)",
		"CREATE TABLE IF NOT EXISTS room_member_profiles (room_id TEXT NOT NULL, user_id TEXT NOT NULL, profile JSONB NOT NULL, PRIMARY KEY (room_id, user_id))",
		"CREATE TABLE IF NOT EXISTS room_state (room_id TEXT NOT NULL, event_type TEXT NOT NULL, state_key TEXT NOT NULL, is_stripped BOOLEAN NOT NULL, state_event JSONB NOT NULL, PRIMARY KEY (room_id, event_type, state_key, is_stripped))",
		"CREATE TABLE IF NOT EXISTS account_data (room_id TEXT NOT NULL DEFAULT '', event_type TEXT NOT NULL, account_data JSONB NOT NULL, PRIMARY KEY (room_id, event_type))",
		"CREATE TABLE IF NOT EXISTS presence (user_id TEXT NOT NULL PRIMARY KEY, presence JSONB NOT NULL)",
		"CREATE TABLE IF NOT EXISTS receipts (room_id TEXT NOT NULL, event_id TEXT NOT NULL, receipt_type TEXT NOT NULL, user_id TEXT NOT NULL, receipt JSONB NOT NULL, PRIMARY KEY (room_id, event_id, receipt_type, user_id))",
	}
}

func (postgresCatalog) RoomRemove() []string {
	return []string{
		"DELETE FROM room_members WHERE room_id = $1",
		"DELETE FROM room_member_profiles WHERE room_id = $1",
		"DELETE FROM room_state WHERE room_id = $1",
		"DELETE FROM account_data WHERE room_id = $1",
		"DELETE FROM receipts WHERE room_id = $1",
		"DELETE FROM rooms WHERE room_id = $1",
	}
}

func (postgresCatalog) RoomUpsert() string {
	return "INSERT INTO rooms (room_id, is_stripped, room_info) VALUES ($1, $2, $3) ON CONFLICT (room_id, is_stripped) DO UPDATE SET room_info = excluded.room_info"
}

func (postgresCatalog) RoomLoad() string {
	return "SELECT room_info FROM rooms WHERE room_id = $1 AND is_stripped = $2"
}

func (postgresCatalog) MemberUpsert() string {
	return "INSERT INTO room_members (room_id, user_id, is_stripped, member_event, displayname) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (room_id, user_id, is_stripped) DO UPDATE SET member_event = excluded.member_event, displayname = excluded.displayname"
}

func (postgresCatalog) MemberLoad() string {
	return "SELECT member_event FROM room_members WHERE room_id = $1 AND user_id = $2 AND is_stripped = $3"
}

func (postgresCatalog) MemberProfileUpsert() string {
	return "INSERT INTO room_member_profiles (room_id, user_id, profile) VALUES ($1, $2, $3) ON CONFLICT (room_id, user_id) DO UPDATE SET profile = excluded.profile"
}

func (postgresCatalog) MemberProfileLoad() string {
	return "SELECT profile FROM room_member_profiles WHERE room_id = $1 AND user_id = $2"
}

func (postgresCatalog) StateUpsert() string {
	return "INSERT INTO room_state (room_id, event_type, state_key, is_stripped, state_event) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (room_id, event_type, state_key, is_stripped) DO UPDATE SET state_event = excluded.state_event"
}

func (postgresCatalog) StateLoad() string {
	return "SELECT state_event FROM room_state WHERE room_id = $1 AND event_type = $2 AND state_key = $3 AND is_stripped = FALSE"
}

func (postgresCatalog) StrippedStateLoad() string {
	return "SELECT state_event FROM room_state WHERE room_id = $1 AND event_type = $2 AND state_key = $3 AND is_stripped = TRUE"
}

func (postgresCatalog) AccountDataUpsert() string {
	return "INSERT INTO account_data (room_id, event_type, account_data) VALUES (COALESCE($1, ''), $2, $3) ON CONFLICT (room_id, event_type) DO UPDATE SET account_data = excluded.account_data"
}

func (postgresCatalog) AccountDataLoad() string {
	return "SELECT account_data FROM account_data WHERE room_id = COALESCE($1, '') AND event_type = $2"
}

func (postgresCatalog) PresenceUpsert() string {
	return "INSERT INTO presence (user_id, presence) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET presence = excluded.presence"
}

func (postgresCatalog) PresenceLoad() string {
	return "SELECT presence FROM presence WHERE user_id = $1"
}

func (postgresCatalog) ReceiptUpsert() string {
	return "INSERT INTO receipts (room_id, event_id, receipt_type, user_id, receipt) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (room_id, event_id, receipt_type, user_id) DO UPDATE SET receipt = excluded.receipt"
}

func (postgresCatalog) ReceiptLoad() string {
	return "SELECT receipt FROM receipts WHERE room_id = $1 AND event_id = $2 AND receipt_type = $3 AND user_id = $4"
}
