package database

// seat_members.seat_id references seats.id; position keeps occupant order.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id                CHAR(36)     NOT NULL PRIMARY KEY,
		name              VARCHAR(255) NOT NULL,
		father_name       VARCHAR(255) NOT NULL DEFAULT '',
		contact           VARCHAR(64)  NOT NULL,
		aadhar            VARCHAR(64)  NOT NULL,
		shift             VARCHAR(32)  NOT NULL,
		custom_start_time VARCHAR(5)   NULL,
		custom_end_time   VARCHAR(5)   NULL,
		monthly_fees      DOUBLE       NOT NULL DEFAULT 0,
		seat              VARCHAR(64)  NULL,
		created_at        DATETIME(6)  NOT NULL,
		updated_at        DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_members_aadhar (aadhar),
		KEY idx_members_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS seats (
		id             CHAR(36)     NOT NULL PRIMARY KEY,
		seat_id        VARCHAR(64)  NOT NULL,
		member_id      CHAR(36)     NULL,
		member_name    VARCHAR(255) NOT NULL DEFAULT '',
		member_contact VARCHAR(64)  NOT NULL DEFAULT '',
		occupied_date  DATETIME(6)  NULL,
		is_occupied    BOOLEAN      NOT NULL DEFAULT FALSE,
		created_at     DATETIME(6)  NOT NULL,
		updated_at     DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_seats_seat_id (seat_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS seat_members (
		seat_id           CHAR(36)     NOT NULL,
		position          INT          NOT NULL,
		member_id         CHAR(36)     NOT NULL,
		member_name       VARCHAR(255) NOT NULL DEFAULT '',
		member_contact    VARCHAR(64)  NOT NULL DEFAULT '',
		shift             VARCHAR(32)  NOT NULL DEFAULT '',
		custom_start_time VARCHAR(5)   NULL,
		custom_end_time   VARCHAR(5)   NULL,
		occupied_date     DATETIME(6)  NOT NULL,
		PRIMARY KEY (seat_id, position),
		KEY idx_seat_members_member (member_id),
		CONSTRAINT fk_seat_members_seat FOREIGN KEY (seat_id) REFERENCES seats (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             CHAR(36)      NOT NULL PRIMARY KEY,
		member_id      CHAR(36)      NOT NULL,
		member_name    VARCHAR(255)  NOT NULL DEFAULT '',
		member_contact VARCHAR(64)   NOT NULL DEFAULT '',
		amount         DOUBLE        NOT NULL DEFAULT 0,
		month          VARCHAR(7)    NOT NULL DEFAULT '',
		paid_at        DATETIME(6)   NOT NULL,
		KEY idx_payments_member (member_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(32)  NOT NULL DEFAULT 'admin',
		is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at    DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_admins_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS members (
		id                TEXT     NOT NULL PRIMARY KEY,
		name              TEXT     NOT NULL,
		father_name       TEXT     NOT NULL DEFAULT '',
		contact           TEXT     NOT NULL,
		aadhar            TEXT     NOT NULL UNIQUE,
		shift             TEXT     NOT NULL,
		custom_start_time TEXT,
		custom_end_time   TEXT,
		monthly_fees      REAL     NOT NULL DEFAULT 0,
		seat              TEXT,
		created_at        DATETIME NOT NULL,
		updated_at        DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_members_created ON members (created_at)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id             TEXT     NOT NULL PRIMARY KEY,
		seat_id        TEXT     NOT NULL UNIQUE,
		member_id      TEXT,
		member_name    TEXT     NOT NULL DEFAULT '',
		member_contact TEXT     NOT NULL DEFAULT '',
		occupied_date  DATETIME,
		is_occupied    BOOLEAN  NOT NULL DEFAULT 0,
		created_at     DATETIME NOT NULL,
		updated_at     DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seat_members (
		seat_id           TEXT     NOT NULL REFERENCES seats (id) ON DELETE CASCADE,
		position          INTEGER  NOT NULL,
		member_id         TEXT     NOT NULL,
		member_name       TEXT     NOT NULL DEFAULT '',
		member_contact    TEXT     NOT NULL DEFAULT '',
		shift             TEXT     NOT NULL DEFAULT '',
		custom_start_time TEXT,
		custom_end_time   TEXT,
		occupied_date     DATETIME NOT NULL,
		PRIMARY KEY (seat_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_seat_members_member ON seat_members (member_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             TEXT     NOT NULL PRIMARY KEY,
		member_id      TEXT     NOT NULL,
		member_name    TEXT     NOT NULL DEFAULT '',
		member_contact TEXT     NOT NULL DEFAULT '',
		amount         REAL     NOT NULL DEFAULT 0,
		month          TEXT     NOT NULL DEFAULT '',
		paid_at        DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_member ON payments (member_id)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id            TEXT     NOT NULL PRIMARY KEY,
		name          TEXT     NOT NULL,
		email         TEXT     NOT NULL UNIQUE,
		password_hash TEXT     NOT NULL,
		role          TEXT     NOT NULL DEFAULT 'admin',
		is_active     BOOLEAN  NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL
	)`,
}
