package db

var schema = `
CREATE TABLE IF NOT EXISTS events (
	event_id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	description TEXT,
	venue VARCHAR(255),
	event_date TIMESTAMPTZ,
	total_seats INT NOT NULL DEFAULT 0,
	max_resale_price BIGINT NOT NULL DEFAULT 0,
	organizer_wallet VARCHAR(58) NOT NULL,
	app_id BIGINT NOT NULL,
	status VARCHAR(32) NOT NULL DEFAULT 'draft',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tickets (
	ticket_id UUID PRIMARY KEY,
	event_id UUID REFERENCES events (event_id),
	seat_number VARCHAR(50) NOT NULL,
	asa_id BIGINT UNIQUE NOT NULL,
	ticket_price BIGINT NOT NULL DEFAULT 0,
	status VARCHAR(32) NOT NULL DEFAULT 'pending',
	current_owner_wallet VARCHAR(58) NOT NULL,
	txn_id VARCHAR(64) UNIQUE,
	minted_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transfers (
	transfer_id UUID PRIMARY KEY,
	ticket_id UUID NOT NULL REFERENCES tickets (ticket_id),
	from_wallet VARCHAR(58) NOT NULL,
	to_wallet VARCHAR(58) NOT NULL,
	price BIGINT NOT NULL DEFAULT 0,
	txn_id VARCHAR(64) UNIQUE NOT NULL,
	confirmed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	user_id UUID PRIMARY KEY,
	wallet_address VARCHAR(58) UNIQUE NOT NULL,
	display_name VARCHAR(100),
	email VARCHAR(255),
	role VARCHAR(32) NOT NULL DEFAULT 'buyer',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sync_cursor (
	program_id BIGINT PRIMARY KEY,
	position BIGINT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_events (
	event_id UUID PRIMARY KEY,
	published_at TIMESTAMPTZ NOT NULL,
	event_name VARCHAR(255) NOT NULL,
	event_payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS read_model_event_stats (
	event_id UUID PRIMARY KEY,
	payload JSONB NOT NULL
);
`
