// This file is part of gba-sub000.
//
// gba-sub000 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gba-sub000 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// Command gbacore is the CLI entrypoint: `run` free-runs a cartridge image
// under the ebiten-backed system loop, `bench` drives the CPU against a
// synthetic cycle budget and reports throughput, and `regress` replays a
// flat binary to a fixed cycle count and prints the resulting register
// file, for comparison against a known-good trace.
package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/harrowm/gba-sub000/internal/benchmark"
	"github.com/harrowm/gba-sub000/internal/cartridge"
	"github.com/harrowm/gba-sub000/internal/cpu"
	"github.com/harrowm/gba-sub000/internal/logger"
	"github.com/harrowm/gba-sub000/internal/memmap"
	"github.com/harrowm/gba-sub000/internal/prefs"
	"github.com/harrowm/gba-sub000/internal/system"
)

var prefsPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gbacore",
		Short: "A cycle-stepped ARM7TDMI interpreter core for a Game Boy Advance emulator.",
	}
	root.PersistentFlags().StringVar(&prefsPath, "prefs", "gbacore.toml", "path to the TOML preferences file")
	root.PersistentFlags().Bool("verbose", false, "enable subsystem logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newRegressCmd())
	return root
}

func loadPrefsAndApply(c *cpu.CPU, verbose bool) prefs.Values {
	logger.SetEnabled(verbose)

	v, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warnf("CLI", "loading prefs: %v", err)
		v = prefs.Default()
	}
	c.SetSimplifiedMulTiming(v.SimplifiedMulTiming)
	c.SetCacheEnabled(v.DecodeCacheEnabled)
	return v
}

func newRunCmd() *cobra.Command {
	var biosPath string

	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Boot a cartridge image and run it in a window.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			loader := cartridge.NewLoader()
			rom, err := loader.LoadROM(args[0])
			if err != nil {
				return err
			}

			sys := system.New()
			loadPrefsAndApply(sys.CPU, verbose)

			if biosPath != "" {
				bios, err := loader.LoadBIOS(biosPath)
				if err != nil {
					return err
				}
				sys.LoadBIOS(bios)
			}
			sys.LoadROM(rom)
			sys.Reset(0x08000000)

			return system.RunWindowed(sys, "gbacore")
		},
	}
	cmd.Flags().StringVar(&biosPath, "bios", "", "path to a BIOS image (optional)")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var cycles uint64

	cmd := &cobra.Command{
		Use:   "bench <rom>",
		Short: "Run a cartridge image for a fixed cycle budget and report throughput.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			loader := cartridge.NewLoader()
			rom, err := loader.LoadROM(args[0])
			if err != nil {
				return err
			}

			mem := memmap.New()
			mem.LoadROM(rom)
			c := cpu.New(mem, nil)
			loadPrefsAndApply(c, verbose)
			c.Reset(0x08000000)

			reg := prometheus.NewRegistry()
			metrics := benchmark.NewMetrics(reg)
			result := benchmark.Run(c, cycles, metrics)
			benchmark.WriteReport(os.Stdout, result)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&cycles, "cycles", 16_777_216, "number of cycles to run")
	return cmd
}

func newRegressCmd() *cobra.Command {
	var cycles uint64

	cmd := &cobra.Command{
		Use:   "regress <image>",
		Short: "Run a flat binary for a fixed cycle count against a flat memory map and print final registers.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			mem := memmap.NewFlat(4 * 1024 * 1024)
			for i, b := range data {
				mem.Write8(uint32(i), b)
			}

			c := cpu.New(mem, nil)
			loadPrefsAndApply(c, verbose)
			c.Reset(0)
			c.Step(cycles)

			regs := c.Registers()
			for i, v := range regs {
				fmt.Printf("R%-2d = %#010x\n", i, v)
			}
			fmt.Printf("CPSR = %#010x\n", c.CPSR())
			return nil
		},
	}
	cmd.Flags().Uint64Var(&cycles, "cycles", 1024, "number of cycles to run")
	return cmd
}
