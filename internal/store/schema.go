package store

const schema = `
-- Flashcards with their Anki-style scheduling state.
CREATE TABLE IF NOT EXISTS cards (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL,
    question TEXT NOT NULL,
    explanation TEXT DEFAULT '',
    last_review DATETIME NOT NULL,
    next_review DATETIME NOT NULL,
    review_count INTEGER NOT NULL DEFAULT 0,
    ease REAL NOT NULL DEFAULT 2.5
);

-- Answer choices; exactly one per card carries is_correct = 1.
CREATE TABLE IF NOT EXISTS card_options (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id INTEGER NOT NULL,
    answer_text TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL,

    FOREIGN KEY(card_id) REFERENCES cards(id)
);

-- Append-only log of graded answers.
CREATE TABLE IF NOT EXISTS card_reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id INTEGER REFERENCES cards(id),
    user_answer TEXT,
    is_correct BOOLEAN,
    reviewed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_next_review ON cards(next_review);
CREATE INDEX IF NOT EXISTS idx_card_options_card ON card_options(card_id);
`
