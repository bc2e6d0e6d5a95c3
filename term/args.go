// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"fmt"
	"strings"

	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
)

// argument roles
const (
	RoleMaterial  = "material"
	RoleVirtual   = "virtual"
	RoleState     = "state"
	RoleParameter = "parameter"
	RoleShape     = "shape"
	RoleMode      = "mode"
)

// argument slots
const (
	slotVar = iota + 1
	slotMat
	slotShape
	slotMode
)

// Arg holds one argument of a term
type Arg struct {
	Var   *fld.Variable // state, parameter or virtual
	Mat   *fld.Material // material
	Shape []int         // shape
	Mode  string        // mode

	slot int
}

// VarArg returns a variable argument
func VarArg(v *fld.Variable) Arg { return Arg{Var: v, slot: slotVar} }

// MatArg returns a material argument
func MatArg(m *fld.Material) Arg { return Arg{Mat: m, slot: slotMat} }

// ShapeArg returns a shape argument
func ShapeArg(shape ...int) Arg { return Arg{Shape: shape, slot: slotShape} }

// ModeArg returns a mode argument
func ModeArg(mode string) Arg { return Arg{Mode: mode, slot: slotMode} }

// Role returns the role of an argument name; e.g. "parameter_1" => "parameter"
func Role(argName string) string {
	if i := strings.LastIndex(argName, "_"); i > 0 {
		return argName[:i]
	}
	return argName
}

// Args holds the arguments of a term by name
type Args struct {
	names []string
	vals  map[string]Arg
}

// NewArgs binds values to the argument names of a term
func NewArgs(info *Info, vals ...Arg) (o *Args, err error) {
	if len(vals) != len(info.ArgTypes) {
		return nil, fmt.Errorf("%w: %s requires %d arguments %v; %d given", ErrArgs, info.Name, len(info.ArgTypes), info.ArgTypes, len(vals))
	}
	o = &Args{names: info.ArgTypes, vals: make(map[string]Arg)}
	for i, name := range info.ArgTypes {
		a := vals[i]
		bad := ""
		switch Role(name) {
		case RoleMaterial:
			if a.slot != slotMat || a.Mat == nil {
				bad = "a material is required"
			}
		case RoleVirtual:
			if a.slot != slotVar || a.Var == nil || !a.Var.Virtual {
				bad = "a virtual variable is required"
			}
		case RoleState, RoleParameter:
			if a.slot != slotVar || a.Var == nil || a.Var.Virtual {
				bad = "a variable with values is required"
			}
		case RoleShape:
			if a.slot != slotShape {
				bad = "a shape is required"
			}
		case RoleMode:
			if a.slot != slotMode {
				bad = "a mode is required"
			}
		default:
			bad = "the role is unknown"
		}
		if bad != "" {
			return nil, fmt.Errorf("%w: %s: argument %d (%q): %s", ErrArgs, info.Name, i, name, bad)
		}
		o.vals[name] = a
	}
	return
}

// Names returns the argument names
func (o *Args) Names() []string { return o.names }

// Var returns a variable argument; nil if name is not a variable
func (o *Args) Var(name string) *fld.Variable { return o.vals[name].Var }

// Mat returns a material argument; nil if name is not a material
func (o *Args) Mat(name string) *fld.Material { return o.vals[name].Mat }

// Shape returns a shape argument
func (o *Args) Shape(name string) []int { return o.vals[name].Shape }

// Mode returns a mode argument
func (o *Args) Mode(name string) string { return o.vals[name].Mode }

// Has tells whether an argument named name exists
func (o *Args) Has(name string) bool {
	_, ok := o.vals[name]
	return ok
}

// versioned returns the variables and materials of names as cache arguments
func (o *Args) versioned(names []string) (res []cache.Versioned) {
	for _, name := range names {
		a := o.vals[name]
		switch {
		case a.Var != nil:
			res = append(res, a.Var)
		case a.Mat != nil:
			res = append(res, a.Mat)
		}
	}
	return
}
