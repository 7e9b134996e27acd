package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gekko3d/xmlscene"
	"github.com/gekko3d/xmlscene/document"
)

type flags struct {
	config            string
	debug             bool
	lenientTransforms bool
	keepExisting      bool
	out               string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "xmlimport scene.xml",
		Short:        "Import an XML renderer scene (camera, meshes, materials) into a scene document",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := xmlscene.LoadConfig(f.config)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			return runImport(cmd, cfg, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "YAML config file (default "+xmlscene.DefaultConfigPath+")")
	fl.BoolVar(&f.debug, "debug", false, "log every import step")
	fl.BoolVar(&f.lenientTransforms, "lenient-transforms", false, "skip unknown transform tags instead of failing")
	fl.BoolVar(&f.keepExisting, "keep-existing", false, "do not clear the scene before importing")
	fl.StringVarP(&f.out, "out", "o", "", "write the document snapshot to this file instead of stdout")
	return cmd
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, f flags, cfg *xmlscene.Config) {
	fl := cmd.Flags()
	if fl.Changed("debug") {
		cfg.Debug = f.debug
	}
	if fl.Changed("lenient-transforms") {
		cfg.LenientTransforms = f.lenientTransforms
	}
	if fl.Changed("keep-existing") {
		cfg.KeepExisting = f.keepExisting
	}
	if fl.Changed("out") {
		cfg.SnapshotOut = f.out
	}
}

func runImport(cmd *cobra.Command, cfg xmlscene.Config, scenePath string) error {
	if !strings.EqualFold(filepath.Ext(scenePath), ".xml") {
		return fmt.Errorf("%s: only *.xml scene files can be imported", scenePath)
	}

	logger := xmlscene.NewWriterLogger(cmd.ErrOrStderr(), cmd.ErrOrStderr(), cfg.LogPrefix, cfg.Debug)
	doc := document.New()
	importer := xmlscene.NewImporter(doc, cfg.Options(logger)...)

	report, err := importer.Import(scenePath)
	if err != nil {
		logger.Errorf("import %s: %v", scenePath, err)
		return err
	}
	for _, m := range report.Meshes {
		logger.Debugf("mesh %s <- %s (%d ops, material %q)", m.Name, m.Path, m.Ops, m.Material)
	}

	if cfg.SnapshotOut != "" {
		if err := doc.SaveSnapshot(cfg.SnapshotOut); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		logger.Infof("snapshot written to %s", cfg.SnapshotOut)
		return nil
	}

	data, err := doc.MarshalSnapshot()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
