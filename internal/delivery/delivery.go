// Package delivery persists rendered report artifacts and transmits
// them by mail. Rendering and transmission failures are distinguished
// so callers know whether artifacts exist on disk.
package delivery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tedhq/ted/internal/render"
	"go.uber.org/zap"
)

var (
	// ErrRender wraps failures while producing or persisting
	// artifacts; anything partially written is undefined.
	ErrRender = errors.New("report rendering failed")
	// ErrDeliver wraps transmission failures that happen after the
	// artifacts were fully written to disk.
	ErrDeliver = errors.New("report delivery failed")
)

// Paths locates the written artifacts of one report.
type Paths struct {
	HTML string
	PDF  string
	XLSX string
}

type Service struct {
	reportsDir string
	mailer     *Mailer
	logger     *zap.Logger
}

func NewService(reportsDir string, mailer *Mailer, logger *zap.Logger) *Service {
	return &Service{reportsDir: reportsDir, mailer: mailer, logger: logger}
}

// Write stores the artifacts under reportsDir/<userID>/<BaseName>.*.
// Writes are at-most-once per request and never retried.
func (s *Service) Write(userID string, a *render.Artifacts) (Paths, error) {
	dir := filepath.Join(s.reportsDir, userID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("%w: creating %s: %v", ErrRender, dir, err)
	}

	p := Paths{
		HTML: filepath.Join(dir, a.BaseName+".html"),
		PDF:  filepath.Join(dir, a.BaseName+".pdf"),
		XLSX: filepath.Join(dir, a.BaseName+".xlsx"),
	}
	files := []struct {
		path string
		data []byte
	}{
		{p.HTML, a.HTML},
		{p.PDF, a.PDF},
		{p.XLSX, a.XLSX},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0644); err != nil {
			return Paths{}, fmt.Errorf("%w: writing %s: %v", ErrRender, f.path, err)
		}
	}
	return p, nil
}

// Send renders nothing: it writes the given artifacts and mails them to
// the admin address, HTML as the body, PDF and XLSX attached.
func (s *Service) Send(in render.Input, a *render.Artifacts) (Paths, error) {
	paths, err := s.Write(in.UserID, a)
	if err != nil {
		return Paths{}, err
	}
	s.logger.Info("report artifacts written",
		zap.String("user_id", in.UserID),
		zap.String("base", a.BaseName),
	)

	subject := fmt.Sprintf("Task Report for %s %s", in.UserID, in.Scope.Describe())
	if err := s.mailer.SendReport(in.Email, subject, a.HTML, []string{paths.PDF, paths.XLSX}); err != nil {
		return paths, fmt.Errorf("%w: %v", ErrDeliver, err)
	}
	s.logger.Info("report mailed", zap.String("user_id", in.UserID), zap.String("subject", subject))
	return paths, nil
}
