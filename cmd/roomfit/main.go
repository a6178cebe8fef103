// roomfit places furniture against the walls of a room plan and reports
// where each piece goes.
//
// Build:
//   go build -o roomfit ./cmd/roomfit
//
// Examples:
//   roomfit -input bedroom.json -pdf plan.pdf -xlsx plan.xlsx
//   roomfit -room plan.dxf -items furniture.csv -door-inward
//   roomfit -input bedroom.json -compare
//   roomfit -serve -addr :8080

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"k8s.io/klog/v2"

	"github.com/piwi3910/roomfit/internal/engine"
	"github.com/piwi3910/roomfit/internal/export"
	"github.com/piwi3910/roomfit/internal/importer"
	"github.com/piwi3910/roomfit/internal/model"
	"github.com/piwi3910/roomfit/internal/project"
	"github.com/piwi3910/roomfit/internal/server"
)

const maxRecentProjects = 10

type options struct {
	configPath string

	input       string
	projectPath string
	roomDXF     string
	itemsPath   string
	doorInward  bool

	step         float64
	probe        float64
	interior     bool
	interiorStep float64

	pdfPath    string
	labelsPath string
	xlsxPath   string
	savePath   string

	compare bool
	serve   bool
	addr    string

	backupPath  string
	restorePath string
	restoreDir  string
}

func main() {
	klog.InitFlags(nil)

	var opts options
	flag.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "Path to the application config file.")
	flag.StringVar(&opts.input, "input", "", "Room request JSON (boundary, door, isOpenInward, algoToPlace).")
	flag.StringVar(&opts.projectPath, "project", "", "Load a saved "+project.ProjectExt+" project instead of -input.")
	flag.StringVar(&opts.roomDXF, "room", "", "Read the room outline and door from a DXF drawing.")
	flag.StringVar(&opts.itemsPath, "items", "", "Read the item list from a CSV or Excel file.")
	flag.BoolVar(&opts.doorInward, "door-inward", false, "With -room, treat the door as opening into the room.")
	flag.Float64Var(&opts.step, "step", 0, "Slide step along each wall in mm (default from config).")
	flag.Float64Var(&opts.probe, "probe", 0, "Interior probe offset from each wall in mm (default from config).")
	flag.BoolVar(&opts.interior, "interior", false, "Fall back to interior positions when no wall fits.")
	flag.Float64Var(&opts.interiorStep, "interior-step", 0, "Interior grid spacing in mm (default from config).")
	flag.StringVar(&opts.pdfPath, "pdf", "", "Write a PDF floor plan to this path.")
	flag.StringVar(&opts.labelsPath, "labels", "", "Write a PDF sheet of QR item labels to this path.")
	flag.StringVar(&opts.xlsxPath, "xlsx", "", "Write an Excel placement report to this path.")
	flag.StringVar(&opts.savePath, "save", "", "Save request, settings and result as a project.")
	flag.BoolVar(&opts.compare, "compare", false, "Compare several settings variants instead of packing once.")
	flag.BoolVar(&opts.serve, "serve", false, "Run the HTTP API instead of packing a single request.")
	flag.StringVar(&opts.addr, "addr", "", "HTTP listen address (default from config).")
	flag.StringVar(&opts.backupPath, "backup", "", "Export config and recent projects to a backup file and exit.")
	flag.StringVar(&opts.restorePath, "restore", "", "Restore config and projects from a backup file and exit.")
	flag.StringVar(&opts.restoreDir, "restore-dir", "", "With -restore, write projects into this directory instead of their original paths.")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}

func run(opts options, out io.Writer) error {
	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", opts.configPath, err)
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	switch {
	case opts.backupPath != "":
		return backup(opts.backupPath, cfg)
	case opts.restorePath != "":
		return restore(opts.restorePath, opts.restoreDir, opts.configPath)
	case opts.serve:
		applyFlagSettings(opts, &settings)
		addr := opts.addr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, addr, settings)
	}

	req, name, err := loadRequest(opts, &settings)
	if err != nil {
		return err
	}
	applyFlagSettings(opts, &settings)

	if opts.compare {
		return printComparison(out, engine.CompareScenarios(engine.BuildDefaultScenarios(settings), req))
	}

	result, err := engine.Solve(req, settings)
	if err != nil {
		return err
	}
	klog.Infof("Placed %d of %d items (feasible: %t)", len(result.Placements), len(req.Items), result.Feasible)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if err := writeExports(opts, req, result, settings); err != nil {
		return err
	}

	if opts.savePath != "" {
		proj := model.NewProject(name)
		proj.Request = req
		proj.Settings = settings
		proj.Result = &result
		if err := project.SaveProject(opts.savePath, proj); err != nil {
			return err
		}
		cfg.AddRecentProject(opts.savePath, maxRecentProjects)
		if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
			klog.Warningf("Could not update recent projects: %v", err)
		}
		klog.Infof("Saved project %s (%s)", proj.Name, proj.ID)
	}
	return nil
}

// loadRequest assembles the request from a project or request file, then lets
// -room and -items replace the room and the item list. A loaded project's
// settings replace the config defaults.
func loadRequest(opts options, settings *model.Settings) (model.Request, string, error) {
	var req model.Request
	name := "Untitled"

	switch {
	case opts.projectPath != "":
		proj, err := project.LoadProject(opts.projectPath)
		if err != nil {
			return req, "", err
		}
		req = proj.Request
		*settings = proj.Settings
		name = proj.Name
	case opts.input != "":
		r, err := importer.LoadRequest(opts.input)
		if err != nil {
			return req, "", err
		}
		req = r
		name = strings.TrimSuffix(filepath.Base(opts.input), filepath.Ext(opts.input))
	case opts.roomDXF == "":
		return req, "", errors.New("one of -input, -project or -room is required")
	}

	if opts.roomDXF != "" {
		room := importer.ImportRoomDXF(opts.roomDXF)
		for _, w := range room.Warnings {
			klog.Warningf("%s: %s", opts.roomDXF, w)
		}
		if len(room.Errors) > 0 {
			return req, "", fmt.Errorf("%s: %s", opts.roomDXF, strings.Join(room.Errors, "; "))
		}
		req.Boundary = room.Boundary
		req.Door = room.Door
		req.Door.OpenInward = opts.doorInward
		if opts.input == "" && opts.projectPath == "" {
			name = strings.TrimSuffix(filepath.Base(opts.roomDXF), filepath.Ext(opts.roomDXF))
		}
	}

	if opts.itemsPath != "" {
		items := importer.ImportItems(opts.itemsPath)
		for _, w := range items.Warnings {
			klog.Warningf("%s: %s", opts.itemsPath, w)
		}
		if len(items.Errors) > 0 {
			return req, "", fmt.Errorf("%s: %s", opts.itemsPath, strings.Join(items.Errors, "; "))
		}
		req.Items = items.Items
	}
	return req, name, nil
}

// applyFlagSettings overrides settings with the packing flags given on the
// command line.
func applyFlagSettings(opts options, s *model.Settings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "step":
			s.Step = opts.step
		case "probe":
			s.ProbeOffset = opts.probe
		case "interior":
			s.InteriorFallback = opts.interior
		case "interior-step":
			s.InteriorStep = opts.interiorStep
		}
	})
}

func writeExports(opts options, req model.Request, result model.Result, settings model.Settings) error {
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, req, result, settings); err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}
		klog.Infof("Wrote floor plan to %s", opts.pdfPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, result); err != nil {
			return fmt.Errorf("exporting labels: %w", err)
		}
		klog.Infof("Wrote labels to %s", opts.labelsPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, result); err != nil {
			return fmt.Errorf("exporting report: %w", err)
		}
		klog.Infof("Wrote report to %s", opts.xlsxPath)
	}
	return nil
}

func printComparison(out io.Writer, results []engine.ComparisonResult) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSTEP\tINTERIOR\tPLACED\tUNPLACED\tFILL %")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t%.1f\t%t\terror: %v\t\t\n", r.Scenario.Name, r.Scenario.Settings.Step, r.Scenario.Settings.InteriorFallback, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%t\t%d\t%d\t%.1f\n",
			r.Scenario.Name, r.Scenario.Settings.Step, r.Scenario.Settings.InteriorFallback,
			r.PlacedCount, r.UnplacedCount, r.FillPercent)
	}
	return tw.Flush()
}

func backup(path string, cfg model.AppConfig) error {
	skipped, err := project.ExportAllData(path, cfg)
	for _, s := range skipped {
		klog.Warningf("Skipped unreadable project %s", s)
	}
	if err != nil {
		return err
	}
	klog.Infof("Wrote backup to %s", path)
	return nil
}

func restore(path, projectDir, configPath string) error {
	data, err := project.ImportAllData(path)
	if err != nil {
		return err
	}
	cfg, err := project.RestoreAllData(data, projectDir)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(configPath, cfg); err != nil {
		return fmt.Errorf("saving restored config: %w", err)
	}
	for _, p := range cfg.RecentProjects {
		klog.V(1).Infof("Restored project %s", p)
	}
	klog.Infof("Restored config and %d projects from %s (backup of %s)", len(cfg.RecentProjects), path, data.CreatedAt)
	return nil
}
