package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalFunc_Shapes(t *testing.T) {
	graph := loadAccount(t)

	tests := []struct {
		expr      string
		reference bool
		shape     CallShape
		in, out   string
	}{
		{"ValidateEmail", true, ShapeValueError, "string", "string"},
		{"Trimmed", true, ShapeValue, "string", "string"},
		{"ValidateTheme", true, ShapeCheck, "record-generator/examples/account.Theme", "record-generator/examples/account.Theme"},
		{"AtLeast(18)", false, ShapeValue, "int", "int"},
		{"AtLeast( 18 )", false, ShapeValue, "int", "int"},
		{"(Trimmed)", true, ShapeValue, "string", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ref, err := graph.EvalFunc(accountPkg, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.reference, ref.Reference)

			in, out, shape, err := ref.ValidatorShape()
			require.NoError(t, err)
			assert.Equal(t, tt.shape, shape)
			assert.Equal(t, tt.in, in.String())
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestEvalFunc_CanonicalExpr(t *testing.T) {
	graph := loadAccount(t)

	ref, err := graph.EvalFunc(accountPkg, "AtLeast(  18 )")
	require.NoError(t, err)
	assert.Equal(t, "AtLeast(18)", ref.Expr)

	ref, err = graph.EvalFunc(accountPkg, "((Trimmed))")
	require.NoError(t, err)
	assert.Equal(t, "Trimmed", ref.Expr)
	assert.True(t, ref.Reference)

	ref, err = graph.EvalFunc(accountPkg, "(*Window).PostInit")
	require.NoError(t, err)
	assert.True(t, ref.Reference)
}

func TestEvalFunc_Errors(t *testing.T) {
	graph := loadAccount(t)

	for name, expr := range map[string]string{
		"syntax":       "AtLeast(",
		"undefined":    "Missing",
		"not function": "ErrInvalidEmail",
		"type":         "Account",
		"import scope": "strings.TrimSpace",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := graph.EvalFunc(accountPkg, expr)
			assert.Error(t, err)
		})
	}

	_, err := graph.EvalFunc("record-generator/missing", "Trimmed")
	assert.ErrorContains(t, err, "not loaded")
}

func TestFuncRef_FactoryShape(t *testing.T) {
	graph := loadAccount(t)

	ref, err := graph.EvalFunc(accountPkg, "NewTags")
	require.NoError(t, err)

	out, withErr, err := ref.FactoryShape()
	require.NoError(t, err)
	assert.False(t, withErr)
	assert.Equal(t, "[]string", out.String())

	ref, err = graph.EvalFunc(accountPkg, "NewLabels")
	require.NoError(t, err)

	out, withErr, err = ref.FactoryShape()
	require.NoError(t, err)
	assert.True(t, withErr)
	assert.Equal(t, "map[string]string", out.String())

	ref, err = graph.EvalFunc(accountPkg, "Trimmed")
	require.NoError(t, err)

	_, _, err = ref.FactoryShape()
	assert.Error(t, err)
}

func TestFuncRef_ValidatorShapeRejects(t *testing.T) {
	graph := loadAccount(t)

	ref, err := graph.EvalFunc(accountPkg, "NewTags")
	require.NoError(t, err)

	_, _, shape, err := ref.ValidatorShape()
	require.Error(t, err)
	assert.Equal(t, ShapeUnknown, shape)
}

func TestCallShape_String(t *testing.T) {
	assert.Equal(t, "value", ShapeValue.String())
	assert.Equal(t, "value+error", ShapeValueError.String())
	assert.Equal(t, "check", ShapeCheck.String())
	assert.Equal(t, "unknown", ShapeUnknown.String())
}

func TestImportSet(t *testing.T) {
	graph := loadAccount(t)

	acc := graph.GetType(TypeID{PkgPath: accountPkg, Name: "Account"})
	settings := graph.GetType(TypeID{PkgPath: accountPkg, Name: "Settings"})

	s := NewImportSet(accountPkg)
	assert.Equal(t, "time.Duration", s.TypeString(acc.Field("Timeout").Type.GoType))
	assert.Equal(t, "Theme", s.TypeString(settings.Field("Theme").Type.GoType))
	assert.Equal(t, "[]string", s.TypeString(acc.Field("Tags").Type.GoType))
	assert.Equal(t, []string{"time"}, s.Paths())

	other := NewImportSet("record-generator/other")
	assert.Equal(t, "account.Theme", other.TypeString(settings.Field("Theme").Type.GoType))
	assert.Equal(t, "*account.Account", other.TypeString(types.NewPointer(acc.GoType)))
	assert.Equal(t, []string{accountPkg}, other.Paths())
}
