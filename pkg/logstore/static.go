package logstore

import (
	"fmt"

	"github.com/stratushq/stratuswire/pkg/model"
)

// defaultS3KeyTemplate is the archive layout used when a bucket is
// configured without an explicit key template.
const defaultS3KeyTemplate = "{jobId}/{taskId}/stdout.log"

// S3Config describes a fixed object-storage layout for archived logs.
// Bucket empty means no archive location is known.
type S3Config struct {
	AccountID   string
	AccountName string
	Region      string
	Bucket      string
	KeyTemplate string
}

// Config describes template-composed log locations. Empty templates mean the
// corresponding lookup reports absence.
type Config struct {
	UITemplate       string
	LiveTemplate     string
	SnapshotTemplate string
	S3               S3Config
}

// Static composes log locations from configured templates. It performs no
// I/O; all lookups are pure string composition.
type Static struct {
	cfg      Config
	ui       *LinkTemplate
	live     *LinkTemplate
	snapshot *LinkTemplate
	s3Key    *LinkTemplate
}

// NewStatic compiles the configured templates. Template syntax errors are
// reported here so lookups stay total.
func NewStatic(cfg Config) (*Static, error) {
	s := &Static{cfg: cfg}

	var err error
	if cfg.UITemplate != "" {
		if s.ui, err = CompileLinkTemplate(cfg.UITemplate); err != nil {
			return nil, fmt.Errorf("ui template: %w", err)
		}
	}
	if cfg.LiveTemplate != "" {
		if s.live, err = CompileLinkTemplate(cfg.LiveTemplate); err != nil {
			return nil, fmt.Errorf("live template: %w", err)
		}
	}
	if cfg.SnapshotTemplate != "" {
		if s.snapshot, err = CompileLinkTemplate(cfg.SnapshotTemplate); err != nil {
			return nil, fmt.Errorf("snapshot template: %w", err)
		}
	}
	if cfg.S3.Bucket != "" {
		keyTemplate := cfg.S3.KeyTemplate
		if keyTemplate == "" {
			keyTemplate = defaultS3KeyTemplate
		}
		if s.s3Key, err = CompileLinkTemplate(keyTemplate); err != nil {
			return nil, fmt.Errorf("s3 key template: %w", err)
		}
	}

	return s, nil
}

func (s *Static) UILink(task *model.Task) (string, bool) {
	if s.ui == nil {
		return "", false
	}
	return s.ui.Expand(task), true
}

func (s *Static) Links(task *model.Task) Links {
	var links Links
	if s.live != nil {
		live := s.live.Expand(task)
		links.Live = &live
	}
	if s.snapshot != nil {
		snapshot := s.snapshot.Expand(task)
		links.Snapshot = &snapshot
	}
	return links
}

func (s *Static) S3Location(task *model.Task) (S3Location, bool) {
	if s.s3Key == nil {
		return S3Location{}, false
	}
	return S3Location{
		AccountID:   s.cfg.S3.AccountID,
		AccountName: s.cfg.S3.AccountName,
		Region:      s.cfg.S3.Region,
		Bucket:      s.cfg.S3.Bucket,
		Key:         s.s3Key.Expand(task),
	}, true
}
