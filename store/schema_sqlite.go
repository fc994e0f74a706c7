package store

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS drivers (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    name          TEXT NOT NULL UNIQUE,
    adr_certified INTEGER NOT NULL DEFAULT 0,
    created_at    TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS trucks (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    plate      TEXT NOT NULL UNIQUE,
    has_genset INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS trailers (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    plate      TEXT NOT NULL UNIQUE,
    has_genset INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS transports (
    id                          INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number                TEXT NOT NULL DEFAULT '',
    client_ref                  TEXT NOT NULL DEFAULT '',
    booking_reference           TEXT NOT NULL DEFAULT '',
    container_number            TEXT NOT NULL DEFAULT '',
    loading_unloading_reference TEXT NOT NULL DEFAULT '',
    transport_type              TEXT NOT NULL DEFAULT 'IMPORT',
    status                      TEXT NOT NULL DEFAULT 'ACTIVE',
    current_status              TEXT NOT NULL DEFAULT 'PLANNED',
    pickup_quay                 TEXT NOT NULL DEFAULT '',
    dropoff_quay                TEXT NOT NULL DEFAULT '',
    truck_id                    INTEGER REFERENCES trucks(id),
    trailer_id                  INTEGER REFERENCES trailers(id),
    requires_adr                INTEGER NOT NULL DEFAULT 0,
    requires_genset             INTEGER NOT NULL DEFAULT 0,
    sent_to_driver              INTEGER NOT NULL DEFAULT 0,
    tar_pickup                  TEXT NOT NULL DEFAULT '',
    tar_dropoff                 TEXT NOT NULL DEFAULT '',
    departure_date              TEXT NOT NULL DEFAULT '',
    return_date                 TEXT NOT NULL DEFAULT '',
    is_cut                      INTEGER NOT NULL DEFAULT 0,
    is_restored                 INTEGER NOT NULL DEFAULT 0,
    is_deleted                  INTEGER NOT NULL DEFAULT 0,
    original_transport_id       INTEGER REFERENCES transports(id),
    created_at                  TEXT NOT NULL DEFAULT (datetime('now','localtime')),
    updated_at                  TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_transports_original ON transports(original_transport_id);
CREATE INDEX IF NOT EXISTS idx_transports_trailer ON transports(trailer_id);
CREATE INDEX IF NOT EXISTS idx_transports_reference ON transports(loading_unloading_reference);

CREATE TABLE IF NOT EXISTS destinations (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    transport_id INTEGER NOT NULL REFERENCES transports(id),
    dest_order   INTEGER NOT NULL DEFAULT 1,
    dest_date    TEXT NOT NULL DEFAULT '',
    dest_time    TEXT NOT NULL DEFAULT '',
    eta          TEXT NOT NULL DEFAULT '',
    location     TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_destinations_transport ON destinations(transport_id, dest_order);

CREATE TABLE IF NOT EXISTS planning_slots (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slot_date   TEXT NOT NULL,
    slot_number INTEGER NOT NULL DEFAULT 1,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    is_active   INTEGER NOT NULL DEFAULT 1,
    driver_id   INTEGER REFERENCES drivers(id),
    truck_id    INTEGER REFERENCES trucks(id),
    created_at  TEXT NOT NULL DEFAULT (datetime('now','localtime')),
    UNIQUE(slot_date, sort_order)
);
CREATE INDEX IF NOT EXISTS idx_slots_date ON planning_slots(slot_date);

CREATE TABLE IF NOT EXISTS transport_slot_assignments (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    transport_id INTEGER NOT NULL REFERENCES transports(id),
    assign_date  TEXT NOT NULL,
    slot_id      INTEGER REFERENCES planning_slots(id),
    slot_order   INTEGER NOT NULL DEFAULT 0,
    created_at   TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_assignments_transport ON transport_slot_assignments(transport_id, assign_date);
CREATE INDEX IF NOT EXISTS idx_assignments_slot ON transport_slot_assignments(slot_id, assign_date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_unslotted ON transport_slot_assignments(transport_id, assign_date) WHERE slot_id IS NULL;

CREATE TABLE IF NOT EXISTS cut_infos (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    transport_id   INTEGER NOT NULL UNIQUE REFERENCES transports(id),
    cut_type       TEXT NOT NULL,
    cut_start_date TEXT NOT NULL,
    cut_end_date   TEXT,
    location       TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    created_at     TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);

CREATE TABLE IF NOT EXISTS trailer_parking_records (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    trailer_id INTEGER NOT NULL UNIQUE REFERENCES trailers(id),
    location   TEXT NOT NULL DEFAULT '',
    notes      TEXT NOT NULL DEFAULT '',
    parked_at  TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
`
