package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"runscaffold/internal/audit"
	"runscaffold/internal/config"
	"runscaffold/internal/doctor"
	"runscaffold/internal/manifest"
	"runscaffold/internal/runfolder"
	"runscaffold/internal/scaffold"
)

type Options struct {
	ConfigPath string
	// LogOutput receives structured logs. Defaults to stderr.
	LogOutput io.Writer
	// LogLevel overrides the configured level when set.
	LogLevel string
}

type Service struct {
	ConfigPath string
	Config     config.Config
	Logger     *slog.Logger

	Scaffold *scaffold.Service
	Doctor   *doctor.Service
	Audit    *audit.Logger
}

func New(opts Options) (*Service, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Ensure(configPath)
	if err != nil {
		return nil, err
	}
	if err := config.CheckMinVersion(cfg, config.Version); err != nil {
		return nil, err
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger := newLogger(level, cfg.Logging.Format, out)

	scaffoldSvc := &scaffold.Service{Logger: logger}
	var auditLogger *audit.Logger
	if cfg.Audit.Enabled {
		auditPath, err := config.ResolveAuditPath(cfg)
		if err != nil {
			return nil, err
		}
		if auditPath != "" {
			auditLogger = audit.New(auditPath)
			scaffoldSvc.Audit = auditLogger
		} else {
			scaffoldSvc.StatusAudit = true
		}
	}
	logger.Debug("service configured", "config", configPath, "audit", cfg.Audit.Enabled)

	return &Service{
		ConfigPath: configPath,
		Config:     cfg,
		Logger:     logger,
		Scaffold:   scaffoldSvc,
		Doctor:     &doctor.Service{ConfigPath: configPath},
		Audit:      auditLogger,
	}, nil
}

// LoadRun reads a run description and applies the configured layout names.
func (s *Service) LoadRun(path string) (manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return manifest.Manifest{}, err
	}
	m.Run.Names = config.LayoutNames(s.Config)
	s.Logger.Debug("run description loaded", "path", path, "run", m.Run.ID,
		"lanes", len(m.Products.Lanes), "data_products", len(m.Products.DataProducts))
	return m, nil
}

func (s *Service) TopLevel(path string) (scaffold.Result, error) {
	m, err := s.LoadRun(path)
	if err != nil {
		return scaffold.Result{}, err
	}
	return s.Scaffold.CreateTopLevel(m.Run)
}

// ProductLevel scaffolds the per-product tree. The bam basecall path is
// resolved the same way the top level does, so both can run as separate
// invocations.
func (s *Service) ProductLevel(path string) (scaffold.Result, error) {
	m, err := s.LoadRun(path)
	if err != nil {
		return scaffold.Result{}, err
	}
	info, err := s.Scaffold.EnsureBamBasecallPath(m.Run)
	if err != nil {
		return scaffold.Result{Info: info}, err
	}
	res, err := s.Scaffold.CreateProductLevel(m.Run, scaffold.FromCollection(m.Products))
	res.Info = append(info, res.Info...)
	return res, err
}

func (s *Service) All(path string) (scaffold.Result, error) {
	m, err := s.LoadRun(path)
	if err != nil {
		return scaffold.Result{}, err
	}
	return s.Scaffold.CreateAll(m.Run, scaffold.FromCollection(m.Products))
}

// Plan is every directory a full scaffolding pass would create.
type Plan struct {
	RunID      int              `json:"runId"`
	Layout     runfolder.Layout `json:"layout"`
	TopLevel   []string         `json:"topLevel"`
	Products   []string         `json:"products"`
	StageLinks []StageLink      `json:"stageLinks"`
}

type StageLink struct {
	Link   string `json:"link"`
	Target string `json:"target"`
}

// Plan derives the layout without touching disk beyond existence checks.
func (s *Service) Plan(path string) (Plan, error) {
	m, err := s.LoadRun(path)
	if err != nil {
		return Plan{}, err
	}
	if _, err := s.Scaffold.EnsureBamBasecallPath(m.Run); err != nil {
		return Plan{}, err
	}
	layout, err := m.Run.Layout()
	if err != nil {
		return Plan{}, err
	}
	top, err := scaffold.TopLevelPlan(m.Run)
	if err != nil {
		return Plan{}, err
	}
	src := scaffold.FromCollection(m.Products)
	products, err := scaffold.ProductPlan(m.Run, src)
	if err != nil {
		return Plan{}, err
	}
	links := []StageLink{}
	for _, p := range src.DataProducts() {
		link, target := scaffold.StageOneLink(layout, p)
		links = append(links, StageLink{Link: link, Target: target})
	}
	return Plan{RunID: m.Run.ID, Layout: layout, TopLevel: top, Products: products, StageLinks: links}, nil
}

func (s *Service) Check(path string) (doctor.Report, error) {
	m, err := s.LoadRun(path)
	if err != nil {
		return doctor.Report{}, err
	}
	if _, err := s.Scaffold.EnsureBamBasecallPath(m.Run); err != nil {
		return doctor.Report{}, fmt.Errorf("DOC_LAYOUT_UNKNOWN: %w", err)
	}
	return s.Doctor.Run(m.Run, scaffold.FromCollection(m.Products)), nil
}
