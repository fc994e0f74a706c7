package store

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS drivers (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL UNIQUE,
    adr_certified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trucks (
    id         BIGSERIAL PRIMARY KEY,
    plate      TEXT NOT NULL UNIQUE,
    has_genset BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trailers (
    id         BIGSERIAL PRIMARY KEY,
    plate      TEXT NOT NULL UNIQUE,
    has_genset BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transports (
    id                          BIGSERIAL PRIMARY KEY,
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
    truck_id                    BIGINT REFERENCES trucks(id),
    trailer_id                  BIGINT REFERENCES trailers(id),
    requires_adr                BOOLEAN NOT NULL DEFAULT FALSE,
    requires_genset             BOOLEAN NOT NULL DEFAULT FALSE,
    sent_to_driver              BOOLEAN NOT NULL DEFAULT FALSE,
    tar_pickup                  TEXT NOT NULL DEFAULT '',
    tar_dropoff                 TEXT NOT NULL DEFAULT '',
    departure_date              TEXT NOT NULL DEFAULT '',
    return_date                 TEXT NOT NULL DEFAULT '',
    is_cut                      BOOLEAN NOT NULL DEFAULT FALSE,
    is_restored                 BOOLEAN NOT NULL DEFAULT FALSE,
    is_deleted                  BOOLEAN NOT NULL DEFAULT FALSE,
    original_transport_id       BIGINT REFERENCES transports(id),
    created_at                  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at                  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transports_original ON transports(original_transport_id);
CREATE INDEX IF NOT EXISTS idx_transports_trailer ON transports(trailer_id);
CREATE INDEX IF NOT EXISTS idx_transports_reference ON transports(loading_unloading_reference);

CREATE TABLE IF NOT EXISTS destinations (
    id           BIGSERIAL PRIMARY KEY,
    transport_id BIGINT NOT NULL REFERENCES transports(id),
    dest_order   INTEGER NOT NULL DEFAULT 1,
    dest_date    TEXT NOT NULL DEFAULT '',
    dest_time    TEXT NOT NULL DEFAULT '',
    eta          TEXT NOT NULL DEFAULT '',
    location     TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_destinations_transport ON destinations(transport_id, dest_order);

CREATE TABLE IF NOT EXISTS planning_slots (
    id          BIGSERIAL PRIMARY KEY,
    slot_date   TEXT NOT NULL,
    slot_number INTEGER NOT NULL DEFAULT 1,
    sort_order  INTEGER NOT NULL DEFAULT 0,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    driver_id   BIGINT REFERENCES drivers(id),
    truck_id    BIGINT REFERENCES trucks(id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE(slot_date, sort_order)
);
CREATE INDEX IF NOT EXISTS idx_slots_date ON planning_slots(slot_date);

CREATE TABLE IF NOT EXISTS transport_slot_assignments (
    id           BIGSERIAL PRIMARY KEY,
    transport_id BIGINT NOT NULL REFERENCES transports(id),
    assign_date  TEXT NOT NULL,
    slot_id      BIGINT REFERENCES planning_slots(id),
    slot_order   INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_assignments_transport ON transport_slot_assignments(transport_id, assign_date);
CREATE INDEX IF NOT EXISTS idx_assignments_slot ON transport_slot_assignments(slot_id, assign_date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_unslotted ON transport_slot_assignments(transport_id, assign_date) WHERE slot_id IS NULL;

CREATE TABLE IF NOT EXISTS cut_infos (
    id             BIGSERIAL PRIMARY KEY,
    transport_id   BIGINT NOT NULL UNIQUE REFERENCES transports(id),
    cut_type       TEXT NOT NULL,
    cut_start_date TEXT NOT NULL,
    cut_end_date   TEXT,
    location       TEXT NOT NULL DEFAULT '',
    notes          TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trailer_parking_records (
    id         BIGSERIAL PRIMARY KEY,
    trailer_id BIGINT NOT NULL UNIQUE REFERENCES trailers(id),
    location   TEXT NOT NULL DEFAULT '',
    notes      TEXT NOT NULL DEFAULT '',
    parked_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
