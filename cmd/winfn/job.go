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

package main

import (
	"io"
	"strconv"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
	yaml "gopkg.in/yaml.v2"

	sqle "github.com/dolthub/go-stream-window"
	"github.com/dolthub/go-stream-window/sql"
	"github.com/dolthub/go-stream-window/sql/expression"
)

var (
	// ErrNoFunctions is returned when a job has nothing to compute.
	ErrNoFunctions = errors.NewKind("job has no functions")
	// ErrUnknownColumn is returned when a job names a column the input does
	// not have.
	ErrUnknownColumn = errors.NewKind("unknown column: %s")
	// ErrNoPartitionKey is returned when a window job has no partition key.
	ErrNoPartitionKey = errors.NewKind("cannot infer the partition key, set partition_by")
)

// Column of the job input.
type Column struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable *bool  `yaml:"nullable"`
}

// Function call of a job. Arguments naming an input column reference it,
// anything else is a constant.
type Function struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// Job describes a computation over a tab separated input.
type Job struct {
	Input     string     `yaml:"input"`
	Columns   []Column   `yaml:"columns"`
	Functions []Function `yaml:"functions"`
	// GroupBy turns the job into a grouping job. Its output has the group by
	// columns followed by the functions.
	GroupBy []string `yaml:"group_by"`
	// PartitionBy is the column used to spread window jobs among workers. It
	// defaults to the first argument of the first function.
	PartitionBy string      `yaml:"partition_by"`
	Config      sqle.Config `yaml:",inline"`
}

// LoadJob reads a job in YAML format.
func LoadJob(r io.Reader) (*Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := yaml.UnmarshalStrict(data, &job); err != nil {
		return nil, err
	}

	if len(job.Functions) == 0 {
		return nil, ErrNoFunctions.New()
	}

	return &job, nil
}

// Schema returns the schema of the job input.
func (j *Job) Schema() (sql.Schema, error) {
	schema := make(sql.Schema, len(j.Columns))
	for i, c := range j.Columns {
		typ, err := sql.TypeFromString(c.Type)
		if err != nil {
			return nil, err
		}
		schema[i] = &sql.Column{
			Name:     c.Name,
			Type:     typ,
			Nullable: c.Nullable == nil || *c.Nullable,
			Source:   "input",
		}
	}
	return schema, nil
}

// Plan builds the node computing the job over source.
func (j *Job) Plan(e *sqle.Engine, source sql.Node) (sql.Node, error) {
	schema := source.Schema()

	fns := make([]sql.Expression, len(j.Functions))
	for i, f := range j.Functions {
		args := make([]sql.Expression, len(f.Args))
		for k, a := range f.Args {
			var err error
			args[k], err = argument(schema, a)
			if err != nil {
				return nil, err
			}
		}

		var err error
		fns[i], err = e.BuildFunction(f.Name, args...)
		if err != nil {
			return nil, err
		}
	}

	if len(j.GroupBy) > 0 {
		grouping := make([]sql.Expression, len(j.GroupBy))
		for i, name := range j.GroupBy {
			f, err := column(schema, name)
			if err != nil {
				return nil, err
			}
			grouping[i] = f
		}
		selected := append(append([]sql.Expression{}, grouping...), fns...)
		return e.GroupBy(selected, grouping, source), nil
	}

	partitionBy := j.PartitionBy
	if partitionBy == "" && len(j.Functions[0].Args) > 0 {
		partitionBy = j.Functions[0].Args[0]
	}
	key, err := column(schema, partitionBy)
	if err != nil {
		return nil, ErrNoPartitionKey.Wrap(err)
	}

	selected := append(expression.SchemaToGetFields(schema), fns...)
	return e.Window(key, selected, source), nil
}

func column(schema sql.Schema, name string) (*expression.GetField, error) {
	idx := schema.IndexOf(name)
	if idx < 0 {
		return nil, ErrUnknownColumn.New(name)
	}
	c := schema[idx]
	return expression.NewGetFieldWithTable(idx, c.Type, c.Source, c.Name, c.Nullable), nil
}

// argument returns a reference to the named column, or a literal when no
// column has that name.
// argument maps a job argument to a column, or to a literal: null, an
// integer, a float or a single quoted text. Anything else is taken as a
// column name that does not exist.
func argument(schema sql.Schema, arg string) (sql.Expression, error) {
	if f, err := column(schema, arg); err == nil {
		return f, nil
	}

	s := strings.TrimSpace(arg)
	if strings.EqualFold(s, "null") {
		return expression.NewLiteral(nil, sql.Text), nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return expression.NewLiteral(i, sql.Int64), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return expression.NewLiteral(f, sql.Float64), nil
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return expression.NewLiteral(s[1:len(s)-1], sql.Text), nil
	}
	return nil, ErrUnknownColumn.New(arg)
}
