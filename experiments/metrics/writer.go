package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EvaluationRecord is the result of playing a trained agent against a
// baseline after training.
type EvaluationRecord struct {
	ID               int
	Difficulty       string
	Workers          int
	TrainingEpisodes int
	TrainingTime     time.Duration
	TableStates      int
	Games            int
	Wins             int
	Losses           int
	Draws            int
}

func (r EvaluationRecord) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games)
}

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates root/name/<timestamp>_<run id> for the files of one run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.New().String()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"_"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) WriteEpisodes(records []EpisodeRecord) error {
	path := filepath.Join(w.baseDir, "episodes.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episodes file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"episode", "reward", "outcome", "exploration_rate", "moves", "capped"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episodes header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Episode),
			strconv.FormatFloat(record.Reward, 'f', -1, 64),
			string(record.Outcome),
			strconv.FormatFloat(record.ExplorationRate, 'f', -1, 64),
			strconv.Itoa(record.Moves),
			strconv.FormatBool(record.Capped),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummary stores s as summary.json, stamped with the run id.
func (w *Writer) WriteSummary(s Summary) error {
	s.RunID = w.runID
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	err = os.WriteFile(filepath.Join(w.baseDir, "summary.json"), data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func (w *Writer) WriteEvaluations(records []EvaluationRecord) error {
	path := filepath.Join(w.baseDir, "evaluations.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create evaluations file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"id", "difficulty", "workers", "training_episodes", "training_time", "table_states", "games", "wins", "losses", "draws", "win_rate"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write evaluations header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Difficulty,
			strconv.Itoa(record.Workers),
			strconv.Itoa(record.TrainingEpisodes),
			record.TrainingTime.String(),
			strconv.Itoa(record.TableStates),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Wins),
			strconv.Itoa(record.Losses),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.WinRate(), 'f', 4, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write evaluation row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
