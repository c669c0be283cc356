package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/themerdev/themer/internal/errors"
	"github.com/themerdev/themer/internal/manifest"
	"github.com/themerdev/themer/internal/templates"
	"github.com/themerdev/themer/internal/types"
)

// execute applies a decision for one output file. Write decisions create the
// file (unless dry-run), run the formatting hook, and record a fresh
// manifest entry from the post-format bytes. Conflicts and skips touch
// neither disk nor manifest.
func (s *Session) execute(ctx context.Context, decision Decision, status manifest.FileStatus, outPath, output string, theme *types.Theme, scheme *types.Scheme, tmpl *templates.Template) error {
	action := Action{
		Path:     outPath,
		Theme:    theme.Name.String(),
		Scheme:   scheme.Name.String(),
		Template: tmpl.Name,
		Status:   status.String(),
		Decision: decision.LogAction(),
	}

	switch {
	case decision == Conflict:
		s.logger.Warn(ctx, nil, "conflict: file was modified outside themer; use --force to overwrite",
			"path", outPath)

	case decision.ShouldWrite():
		if s.dryRun {
			s.logger.Info(ctx, "would write file", "path", outPath, "action", decision.LogAction())
			break
		}

		if err := s.writeAndTrack(ctx, outPath, output, theme, scheme, tmpl); err != nil {
			return err
		}
		action.Wrote = true
		s.logger.Info(ctx, "generated file", "path", outPath, "action", decision.LogAction())

	default:
		s.logger.Debug(ctx, "skipped file", "path", outPath, "action", decision.LogAction())
	}

	s.report.add(action)

	return nil
}

func (s *Session) writeAndTrack(ctx context.Context, outPath, output string, theme *types.Theme, scheme *types.Scheme, tmpl *templates.Template) error {
	if parent := filepath.Dir(outPath); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return errors.Wrap(errors.KindIO, err, "failed to create output directory").WithPath(parent)
		}
	}

	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		return errors.Wrap(errors.KindIO, err, "failed to write file").WithPath(outPath)
	}

	if err := s.format(ctx, outPath); err != nil {
		return err
	}

	// Re-read after formatting so the recorded hash matches the bytes that
	// actually ended up on disk.
	formatted, err := os.ReadFile(outPath)
	if err != nil {
		return errors.Wrap(errors.KindIO, err, "failed to read file back for hashing").WithPath(outPath)
	}

	entry, err := manifest.CreateEntry(outPath, theme, scheme, tmpl.Name, tmpl.Source, formatted)
	if err != nil {
		return err
	}
	s.index.Insert(entry)

	return nil
}

// format runs the configured post-write formatter on the file, when any.
func (s *Session) format(ctx context.Context, outPath string) error {
	if len(s.cfg.FormatCommand) == 0 {
		return nil
	}

	args := append(append([]string{}, s.cfg.FormatCommand[1:]...), outPath)
	cmd := exec.CommandContext(ctx, s.cfg.FormatCommand[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(errors.KindIO, err, "format command failed: %s", string(out)).WithPath(outPath)
	}

	return nil
}
