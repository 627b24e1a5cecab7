// Package session serves corpus sentences one at a time and persists each
// confirmed annotation, keeping enough progress in sqlite to resume a run.
package session

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/spantag/internal/annotate"
	"github.com/jask/spantag/internal/database"
	"github.com/jask/spantag/internal/database/repository"
)

// Options identify a run. SentencePath and OutputDir are only used when the
// run is created; a resumed run keeps its stored paths.
type Options struct {
	Name         string
	SentencePath string
	OutputDir    string
	Logger       *zap.Logger
}

// Session is a file-backed annotate.Session.
type Session struct {
	run         repository.Run
	runs        *repository.RunRepo
	annotations *repository.AnnotationRepo
	log         *zap.Logger

	file    *os.File
	scanner *bufio.Scanner
	current int
	active  bool

	// pending holds a line read from the corpus whose position could not be
	// recorded yet, so the next call serves it again.
	pending string
}

var _ annotate.Session = (*Session)(nil)

// Open creates the named run or resumes it. On resume the last served
// sentence is served again unless its annotation was already saved.
func Open(ctx context.Context, db *sql.DB, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		runs:        repository.NewRunRepo(db),
		annotations: repository.NewAnnotationRepo(db),
		log:         log,
		active:      true,
	}

	existing, err := s.runs.ByName(ctx, opts.Name)
	if err != nil {
		return nil, fmt.Errorf("load run %q: %w", opts.Name, err)
	}
	if existing == nil {
		if opts.SentencePath == "" || opts.OutputDir == "" {
			return nil, errors.New("new run needs a sentence file and an output dir")
		}
		// stored absolute so a resume from another directory finds the same files
		sentencePath, err := filepath.Abs(opts.SentencePath)
		if err != nil {
			return nil, fmt.Errorf("sentence path: %w", err)
		}
		outputDir, err := filepath.Abs(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("output dir: %w", err)
		}
		now := database.Now()
		s.run = repository.Run{
			ID:            uuid.NewString(),
			Name:          opts.Name,
			SentencePath:  sentencePath,
			OutputDir:     outputDir,
			CurrentSentID: -1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.runs.Create(ctx, s.run); err != nil {
			return nil, fmt.Errorf("create run: %w", err)
		}
		log.Info("run created", zap.String("run", s.run.Name), zap.String("id", s.run.ID))
	} else {
		s.run = *existing
		saved, err := s.annotations.CountByRun(ctx, s.run.ID)
		if err != nil {
			return nil, fmt.Errorf("count annotations: %w", err)
		}
		log.Info("run resumed",
			zap.String("run", s.run.Name),
			zap.Int("sentence", s.run.CurrentSentID),
			zap.Int("saved", saved))
	}

	if err := os.MkdirAll(s.run.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir output dir: %w", err)
	}
	f, err := os.Open(s.run.SentencePath)
	if err != nil {
		return nil, fmt.Errorf("open sentences: %w", err)
	}
	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if err := s.seek(ctx); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

// seek skips the sentences a resumed run has already finished.
func (s *Session) seek(ctx context.Context) error {
	resume := s.run.CurrentSentID
	if resume < 0 {
		s.current = -1
		return nil
	}
	saved, err := s.annotations.Get(ctx, s.run.ID, resume)
	if err != nil {
		return fmt.Errorf("check annotation: %w", err)
	}
	if saved != nil {
		s.log.Debug("last served sentence already saved",
			zap.Int("sentence", resume), zap.Time("saved_at", saved.SavedAt))
		resume++
	}
	for i := 0; i < resume; i++ {
		if _, ok := s.readSentence(); !ok {
			break
		}
	}
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("read sentences: %w", err)
	}
	s.current = resume - 1
	return nil
}

// readSentence returns the next non-blank line.
func (s *Session) readSentence() (string, bool) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// NextSentence returns the next sentence and records it as served.
func (s *Session) NextSentence(ctx context.Context) (string, error) {
	if !s.active {
		return "", annotate.ErrSessionInactive
	}
	line := s.pending
	if line == "" {
		var ok bool
		if line, ok = s.readSentence(); !ok {
			return "", s.exhaust(ctx)
		}
		s.pending = line
	}
	next := s.current + 1
	if err := s.runs.SetPosition(ctx, s.run.ID, next, database.Now()); err != nil {
		return "", fmt.Errorf("save position: %w", err)
	}
	s.pending = ""
	s.current = next
	s.run.CurrentSentID = next
	s.log.Debug("sentence served", zap.Int("sentence", s.current))
	return line, nil
}

// exhaust marks the run finished once the corpus has no more sentences.
func (s *Session) exhaust(ctx context.Context) error {
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("read sentences: %w", err)
	}
	if s.run.FinishedAt == nil {
		now := database.Now()
		if err := s.runs.Finish(ctx, s.run.ID, now); err != nil {
			return fmt.Errorf("finish run: %w", err)
		}
		s.run.FinishedAt = &now
		s.log.Info("run finished", zap.String("run", s.run.Name))
	}
	return fmt.Errorf("%s: %w", s.run.SentencePath, annotate.ErrExhausted)
}

// SaveAnnotation writes the current sentence's rows to <output_dir>/<id>.txt
// and records the same body in the database.
func (s *Session) SaveAnnotation(ctx context.Context, rows []annotate.Row) error {
	if !s.active {
		return annotate.ErrSessionInactive
	}
	if s.current < 0 {
		return errors.New("no sentence has been served")
	}
	body := Tabulate(rows)
	path := s.OutputPath(s.current)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write annotation: %w", err)
	}
	err := s.annotations.Upsert(ctx, repository.Annotation{
		RunID:   s.run.ID,
		SentID:  s.current,
		Body:    body,
		SavedAt: database.Now(),
	})
	if err != nil {
		return fmt.Errorf("record annotation: %w", err)
	}
	s.log.Info("annotation saved", zap.Int("sentence", s.current), zap.String("path", path))
	return nil
}

// OutputPath is the file holding sentence id's annotation.
func (s *Session) OutputPath(id int) string {
	return filepath.Join(s.run.OutputDir, fmt.Sprintf("%d.txt", id))
}

// Close marks the session inactive. It is safe to call more than once.
func (s *Session) Close() error {
	if !s.active {
		return nil
	}
	s.active = false
	return s.file.Close()
}

// Run returns the stored run.
func (s *Session) Run() repository.Run { return s.run }

// Current is the id of the sentence last served, or -1.
func (s *Session) Current() int { return s.current }

func (s *Session) Active() bool { return s.active }
