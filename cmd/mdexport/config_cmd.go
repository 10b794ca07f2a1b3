package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdexport/internal/yamlutil"
)

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var name string
	fs.StringVarP(&name, "config", "c", "", "config file name or path")
	fs.Usage = func() { printConfigUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(name, envCfg.ConfigPath)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName(name)))
		return exitCodeFor(err)
	}
	applyEnvConfig(envCfg, cfg)

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitGeneral
	}
	_, _ = env.Stdout.Write(out)
	return ExitSuccess
}
