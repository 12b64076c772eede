// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command winfn computes window functions and DEDUP over a tab separated
// file described by a YAML job.
//
// The input must be grouped by the partition key and sorted within each
// partition, the same way it would be distributed and sorted before reaching
// the functions in a query.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sqle "github.com/dolthub/go-stream-window"
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/plan"
)

type options struct {
	job         string
	logLevel    string
	logJSON     bool
	parallelism int
	header      bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "winfn",
		Short:         "Run window functions over a sorted tab separated file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sqle.ConfigureLogger(opts.logLevel, opts.logJSON); err != nil {
				return err
			}
			return runJobFile(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.job, "job", "", "path of the YAML job file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")
	flags.IntVar(&opts.parallelism, "parallelism", 0, "number of workers, overrides the job when positive")
	flags.BoolVar(&opts.header, "header", false, "write the column names as the first output line")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runJobFile(opts options, stdin io.Reader, stdout io.Writer) error {
	f, err := os.Open(opts.job)
	if err != nil {
		return err
	}
	defer f.Close()

	job, err := LoadJob(f)
	if err != nil {
		return err
	}
	if opts.parallelism > 0 {
		job.Config.Parallelism = opts.parallelism
	}

	in := stdin
	if job.Input != "" && job.Input != "-" {
		path := job.Input
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(opts.job), path)
		}
		input, err := os.Open(path)
		if err != nil {
			return err
		}
		defer input.Close()
		in = input
	}

	return run(sql.NewEmptyContext(), job, in, stdout, opts.header)
}

// run executes job over the rows read from in and writes the result to out.
func run(ctx *sql.Context, job *Job, in io.Reader, out io.Writer, header bool) error {
	schema, err := job.Schema()
	if err != nil {
		return err
	}

	table, err := readTable(ctx, in, schema)
	if err != nil {
		return err
	}

	e := sqle.New(&job.Config)
	node, err := job.Plan(e, plan.NewResolvedTable(table))
	if err != nil {
		return err
	}

	outSchema, iter, err := e.Query(ctx, node)
	if err != nil {
		return err
	}

	n, err := writeRows(ctx, out, outSchema, iter, header)
	if err != nil {
		return err
	}

	ctx.GetLogger().WithFields(logrus.Fields{
		"input":  table.Len(),
		"output": n,
	}).Info("job finished")
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
