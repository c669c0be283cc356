// Package render orchestrates one full generation run: it iterates themes,
// schemes, and templates, resolves each output path, decorates it with
// upstream links, renders the content, and applies the write decision the
// manifest dictates. The manifest is persisted once, after every decision
// has been applied; a failed run never persists.
package render

import (
	"context"
	"strings"

	"github.com/themerdev/themer/internal/config"
	"github.com/themerdev/themer/internal/logging"
	"github.com/themerdev/themer/internal/manifest"
	"github.com/themerdev/themer/internal/templates"
	"github.com/themerdev/themer/internal/themes"
	"github.com/themerdev/themer/internal/types"
	"github.com/themerdev/themer/internal/upstream"
)

// swatchVariable is the context key a swatch-iterating template is expected
// to reference.
const swatchVariable = ".swatch"

// Session owns the state of one run: the manifest, the upstream cache, the
// resolved configuration, and the write policy. Single-writer; nothing else
// touches the manifest while a session is live.
type Session struct {
	cfg        *config.Config
	index      *manifest.Manifest
	cache      *upstream.Cache
	directives *templates.Directives
	writeMode  WriteMode
	dryRun     bool
	logger     logging.Logger

	// loaders memoizes template loaders per templates directory, since
	// multiple themes commonly share the project-level one.
	loaders map[string]*templates.Loader

	report *Report
}

// NewSession loads the manifest and prepares a session. The manifest is read
// exactly once here and written exactly once by Run on success.
func NewSession(cfg *config.Config, logger logging.Logger, mode WriteMode, dryRun bool) (*Session, error) {
	index, err := manifest.Load(cfg.Project.Root)
	if err != nil {
		return nil, err
	}

	directives, err := templates.NewDirectives(cfg.StripDirectives)
	if err != nil {
		return nil, err
	}

	return &Session{
		cfg:        cfg,
		index:      index,
		cache:      upstream.NewCache(logger),
		directives: directives,
		writeMode:  mode,
		dryRun:     dryRun,
		logger:     logger.WithComponent("render"),
		loaders:    make(map[string]*templates.Loader),
		report:     &Report{DryRun: dryRun},
	}, nil
}

// Run executes the full pipeline and persists the manifest unless the run is
// a dry run. The returned report lists every decision made.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	allThemes, err := themes.LoadAll(s.cfg)
	if err != nil {
		return nil, err
	}

	for _, theme := range allThemes {
		if err := s.renderTheme(ctx, theme); err != nil {
			return nil, err
		}
	}

	if !s.dryRun {
		if err := s.index.Save(); err != nil {
			return nil, err
		}
	}

	return s.report, nil
}

func (s *Session) renderTheme(ctx context.Context, theme *types.Theme) error {
	loader, err := s.loaderFor(theme)
	if err != nil {
		return err
	}

	for _, scheme := range theme.Schemes {
		for _, tmpl := range loader.Templates() {
			if !templates.Eligible(tmpl.Name) {
				s.logger.Debug(ctx, "skipping excluded template", "template", tmpl.Name)
				continue
			}

			if err := s.apply(ctx, theme, scheme, tmpl); err != nil {
				return err
			}
		}
	}

	return nil
}

// loaderFor returns the template loader for a theme's templates directory,
// loading it on first use.
func (s *Session) loaderFor(theme *types.Theme) (*templates.Loader, error) {
	dir := s.cfg.Dirs.Templates
	if theme.Config != nil {
		dir = theme.Config.Dirs.Templates
	}

	if loader, ok := s.loaders[dir]; ok {
		return loader, nil
	}

	loader, err := templates.Load(dir, s.directives)
	if err != nil {
		return nil, err
	}
	s.loaders[dir] = loader

	return loader, nil
}

// apply runs one template for one scheme, fanning out per swatch when the
// template name carries the swatch marker.
func (s *Session) apply(ctx context.Context, theme *types.Theme, scheme *types.Scheme, tmpl *templates.Template) error {
	if !tmpl.UsesSwatchIteration() {
		return s.writeOne(ctx, theme, scheme, tmpl, nil)
	}

	if !strings.Contains(tmpl.Source, swatchVariable) {
		s.logger.Warn(ctx, nil, "template has SWATCH in filename but does not use swatch inside template",
			"template", tmpl.Name)
	}

	for i := range scheme.Palette {
		if err := s.writeOne(ctx, theme, scheme, tmpl, &scheme.Palette[i]); err != nil {
			return err
		}
	}

	return nil
}

// writeOne performs the per-invocation steps: resolve the output path, build
// upstream annotation for it, render, consult the manifest, and apply the
// decision.
func (s *Session) writeOne(ctx context.Context, theme *types.Theme, scheme *types.Scheme, tmpl *templates.Template, swatch *types.Swatch) error {
	swatchName := ""
	if swatch != nil {
		swatchName = swatch.Name.String()
	}

	outPath, err := resolvePath(theme, tmpl.Name, scheme.Name.String(), s.cfg, swatchName)
	if err != nil {
		return err
	}

	special := s.buildSpecial(ctx, outPath)

	renderContext, err := buildContext(theme, scheme, special, tmpl.Style, swatch)
	if err != nil {
		return err
	}

	rendered, err := tmpl.Render(renderContext)
	if err != nil {
		return err
	}
	output := s.directives.MakeHeader(outPath, special) + rendered

	status, err := s.index.Check(outPath, theme, scheme, tmpl.Source)
	if err != nil {
		return err
	}
	decision := Decide(status, s.writeMode)

	return s.execute(ctx, decision, status, outPath, output, theme, scheme, tmpl)
}

// buildSpecial resolves the upstream annotation for an output path. Every
// failure degrades to an empty annotation; none aborts the render.
func (s *Session) buildSpecial(ctx context.Context, outPath string) *upstream.Special {
	info := s.cache.GetOrDetect(ctx, outPath)
	if info == nil {
		return &upstream.Special{}
	}

	relPath, ok := s.cache.RelPath(ctx, info, outPath)
	if !ok {
		return &upstream.Special{}
	}

	remote, err := upstream.ParseRemote(info.URL)
	if err != nil {
		s.logger.Warn(ctx, err, "failed to parse remote URL", "url", info.URL)

		return &upstream.Special{}
	}

	links, err := upstream.BuildLinks(remote, relPath, info.Branch, s.cfg.Providers)
	if err != nil {
		s.logger.Warn(ctx, err, "failed to build blob url", "host", remote.Host)

		return &upstream.Special{}
	}

	return &upstream.Special{
		UpstreamFile: &links.File,
		UpstreamRepo: links.Repo,
	}
}
