package store

// schema contains the SQL statements to create the hierarchy index schema.
const schema = `
-- Parcels table
CREATE TABLE IF NOT EXISTS parcels (
    name         TEXT PRIMARY KEY,
    nickname     TEXT NOT NULL,
    prefix       TEXT NOT NULL,
    upper_prefix TEXT NOT NULL,
    caps_prefix  TEXT NOT NULL,
    included     INTEGER NOT NULL
);

-- Classes table, position is the class's place in the ladder
CREATE TABLE IF NOT EXISTS classes (
    name              TEXT PRIMARY KEY,
    parcel            TEXT NOT NULL,
    position          INTEGER NOT NULL,
    parent            TEXT,
    nickname          TEXT NOT NULL,
    full_struct_sym   TEXT NOT NULL,
    full_vtable_var   TEXT NOT NULL,
    full_ivars_offset TEXT NOT NULL,
    include_h         TEXT NOT NULL,
    final             INTEGER NOT NULL,
    inert             INTEGER NOT NULL,
    FOREIGN KEY (parcel) REFERENCES parcels(name)
);

CREATE INDEX IF NOT EXISTS idx_classes_parcel ON classes(parcel);
CREATE INDEX IF NOT EXISTS idx_classes_parent ON classes(parent);

-- Method tables, one row per vtable slot
CREATE TABLE IF NOT EXISTS method_slots (
    class           TEXT NOT NULL,
    slot            INTEGER NOT NULL,
    macro_sym       TEXT NOT NULL,
    kind            TEXT NOT NULL,
    declared_in     TEXT NOT NULL,
    full_method_sym TEXT NOT NULL,
    imp_func        TEXT NOT NULL,
    final           INTEGER NOT NULL,
    abstract        INTEGER NOT NULL,
    PRIMARY KEY (class, slot),
    FOREIGN KEY (class) REFERENCES classes(name)
);

CREATE INDEX IF NOT EXISTS idx_method_slots_declared_in ON method_slots(declared_in);

-- Member variables, in instance layout order
CREATE TABLE IF NOT EXISTS member_vars (
    class       TEXT NOT NULL,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    type        TEXT NOT NULL,
    declared_in TEXT NOT NULL,
    PRIMARY KEY (class, position),
    FOREIGN KEY (class) REFERENCES classes(name)
);

-- Metadata table
CREATE TABLE IF NOT EXISTS metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
