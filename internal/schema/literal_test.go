package schema

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedType(pkgPath, pkgName, name string, underlying types.Type) types.Type {
	pkg := types.NewPackage(pkgPath, pkgName)
	obj := types.NewTypeName(0, pkg, name, nil)

	return types.NewNamed(obj, underlying, nil)
}

func TestLiteral(t *testing.T) {
	duration := namedType("time", "time", "Duration", types.Typ[types.Int64])
	theme := namedType("record-generator/examples/account", "account", "Theme", types.Typ[types.String])
	strSlice := types.NewSlice(types.Typ[types.String])

	tests := []struct {
		name string
		v    any
		t    types.Type
		want string
		err  bool
	}{
		{"string", "ann", types.Typ[types.String], `"ann"`, false},
		{"quoted", `a "b"`, types.Typ[types.String], `"a \"b\""`, false},
		{"int as string", 18, types.Typ[types.String], `"18"`, false},
		{"named string", "light", theme, `"light"`, false},
		{"int", 18, types.Typ[types.Int], "18", false},
		{"whole float to int", 2.0, types.Typ[types.Int], "2", false},
		{"fractional float to int", 2.5, types.Typ[types.Int], "", true},
		{"int8 overflow", 300, types.Typ[types.Int8], "", true},
		{"int8 min", -128, types.Typ[types.Int8], "-128", false},
		{"uint negative", -1, types.Typ[types.Uint], "", true},
		{"uint8 max", 255, types.Typ[types.Uint8], "255", false},
		{"uint8 overflow", 256, types.Typ[types.Uint8], "", true},
		{"float", 0.25, types.Typ[types.Float64], "0.25", false},
		{"float from int", 20, types.Typ[types.Float32], "20", false},
		{"bool", true, types.Typ[types.Bool], "true", false},
		{"bool from string", "false", types.Typ[types.Bool], "false", false},
		{"bad bool", "maybe", types.Typ[types.Bool], "", true},
		{"duration string", "1m30s", duration, "90000000000", false},
		{"duration int", 5, duration, "5", false},
		{"nil slice", nil, strSlice, "nil", false},
		{"nil int", nil, types.Typ[types.Int], "", true},
		{"slice literal", "a", strSlice, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Literal(tt.v, tt.t)
			if tt.err {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNillable(t *testing.T) {
	assert.True(t, Nillable(types.NewSlice(types.Typ[types.Int])))
	assert.True(t, Nillable(types.NewMap(types.Typ[types.String], types.Typ[types.Int])))
	assert.True(t, Nillable(types.NewPointer(types.Typ[types.Int])))
	assert.False(t, Nillable(types.Typ[types.String]))
}
