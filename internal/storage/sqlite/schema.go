// ABOUTME: SQLite database schema for the coaching platform
// ABOUTME: Creates all tables and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Platform accounts
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Health assessments (latest per user wins for context building)
CREATE TABLE IF NOT EXISTS health_assessments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    age INTEGER NOT NULL,
    risk_score REAL NOT NULL,
    risk_category TEXT NOT NULL,
    answers TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Subscription tiers
CREATE TABLE IF NOT EXISTS subscriptions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    tier TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Training sessions (status: active | completed)
CREATE TABLE IF NOT EXISTS training_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    avatar_id TEXT NOT NULL,
    scenario TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    context TEXT,
    metrics TEXT,
    summary TEXT,
    started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    completed_at DATETIME
);

-- Training messages (transcript turns, append-only)
CREATE TABLE IF NOT EXISTS training_messages (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    sequence_number INTEGER NOT NULL,
    quality_score INTEGER DEFAULT 0,
    empathy_score INTEGER DEFAULT 0,
    accuracy_score INTEGER DEFAULT 0,
    feedback_rating INTEGER DEFAULT 0,
    feedback_comment TEXT DEFAULT '',
    improved_response TEXT DEFAULT '',
    improved_quality_score INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(session_id, sequence_number)
);

-- Knowledge documents uploaded per avatar
CREATE TABLE IF NOT EXISTS knowledge_documents (
    id TEXT PRIMARY KEY,
    avatar_id TEXT NOT NULL,
    title TEXT NOT NULL,
    chunk_count INTEGER DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Knowledge chunks (lifetime tied to parent document)
CREATE TABLE IF NOT EXISTS knowledge_chunks (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES knowledge_documents(id) ON DELETE CASCADE,
    avatar_id TEXT NOT NULL,
    chunk_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    keywords TEXT,
    topics TEXT
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_assessments_user ON health_assessments(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_user_avatar ON training_sessions(user_id, avatar_id);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON training_sessions(status);
CREATE INDEX IF NOT EXISTS idx_messages_session ON training_messages(session_id, sequence_number);
CREATE INDEX IF NOT EXISTS idx_documents_avatar ON knowledge_documents(avatar_id);
CREATE INDEX IF NOT EXISTS idx_chunks_avatar ON knowledge_chunks(avatar_id);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON knowledge_chunks(document_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
