package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/internal/logger"
)

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 || args[0] != "init" {
		return fmt.Errorf("usage: cliptool config init [-force] [path]")
	}

	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	path := filepath.Join(config.ConfigDir(), config.FileName)
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	// The effective settings, so flags given with init end up in the file.
	var err error
	if fs.NArg() > 0 {
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return err
	}

	logger.Info("wrote config", zap.String("path", path))
	fmt.Println(path)
	return nil
}
