// meta/meta.go
package meta

// MAX_MOVES caps the turns of a single game; a capped game is a draw.
const MAX_MOVES = 300

// EPISODES is the default number of training episodes.
const EPISODES = 1000

// GO_ROUTINES defines the default number of training workers.
const GO_ROUTINES = 1

// PROGRESS_INTERVAL is how often, in episodes, training logs its progress.
const PROGRESS_INTERVAL = 100

// DIFFICULTY is the level used when none is requested.
const DIFFICULTY = "easy"

// TABLE_PATH is where the Q-table is saved and loaded by default.
const TABLE_PATH = "qtable.json"

// TELEMETRY_DIR is the root directory for training run output.
const TELEMETRY_DIR = "runs"
