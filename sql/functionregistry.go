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

package sql

import (
	"strings"
)

// Function is a function that can be looked up by name and built with a list
// of arguments. Building a function runs every setup check, so a successful
// NewInstance is ready to evaluate rows.
type Function interface {
	// FunctionName returns the name of this function.
	FunctionName() string
	// NewInstance returns a new instance of the function for the given
	// arguments.
	NewInstance(args []Expression) (Expression, error)
}

// Function1 is a function with exactly 1 argument.
type Function1 struct {
	Name string
	Fn   func(e Expression) (Expression, error)
}

// Function2 is a function with exactly 2 arguments.
type Function2 struct {
	Name string
	Fn   func(e1, e2 Expression) (Expression, error)
}

// FunctionN is a function with a variable number of arguments. The function
// itself is expected to check the number of arguments it receives.
type FunctionN struct {
	Name string
	Fn   func(args ...Expression) (Expression, error)
}

var _ Function = Function1{}
var _ Function = Function2{}
var _ Function = FunctionN{}

// FunctionName implements the Function interface.
func (fn Function1) FunctionName() string { return fn.Name }

// NewInstance implements the Function interface.
func (fn Function1) NewInstance(args []Expression) (Expression, error) {
	if len(args) != 1 {
		return nil, ErrInvalidArgumentNumber.New(fn.Name, 1, len(args))
	}
	return fn.Fn(args[0])
}

// FunctionName implements the Function interface.
func (fn Function2) FunctionName() string { return fn.Name }

// NewInstance implements the Function interface.
func (fn Function2) NewInstance(args []Expression) (Expression, error) {
	if len(args) != 2 {
		return nil, ErrInvalidArgumentNumber.New(fn.Name, 2, len(args))
	}
	return fn.Fn(args[0], args[1])
}

// FunctionName implements the Function interface.
func (fn FunctionN) FunctionName() string { return fn.Name }

// NewInstance implements the Function interface.
func (fn FunctionN) NewInstance(args []Expression) (Expression, error) {
	return fn.Fn(args...)
}

// FunctionRegistry is used to register functions. Names are case
// insensitive.
type FunctionRegistry map[string]Function

// NewFunctionRegistry creates a new, empty FunctionRegistry.
func NewFunctionRegistry() FunctionRegistry {
	return make(FunctionRegistry)
}

// Register registers functions under their own name.
func (r FunctionRegistry) Register(fns ...Function) error {
	for _, fn := range fns {
		name := strings.ToLower(fn.FunctionName())
		if _, ok := r[name]; ok {
			return ErrFunctionAlreadyRegistered.New(name)
		}
		r[name] = fn
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r FunctionRegistry) MustRegister(fns ...Function) {
	if err := r.Register(fns...); err != nil {
		panic(err)
	}
}

// Function returns a function with the given name.
func (r FunctionRegistry) Function(name string) (Function, error) {
	if fn, ok := r[strings.ToLower(name)]; ok {
		return fn, nil
	}
	return nil, ErrFunctionNotFound.New(name)
}

// Build looks a function up and instantiates it with args.
func (r FunctionRegistry) Build(name string, args ...Expression) (Expression, error) {
	fn, err := r.Function(name)
	if err != nil {
		return nil, err
	}
	return fn.NewInstance(args)
}
