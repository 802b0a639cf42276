package record_test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/record"
)

var errNoAt = errors.New("email must contain '@'")

func validateEmail(v string) (string, error) {
	if !strings.Contains(v, "@") {
		return "", errNoAt
	}

	return v, nil
}

func atLeast(n int) *record.Transform {
	return record.Map(func(v int) int { return max(n, v) })
}

func atMost(n int) *record.Transform {
	return record.Map(func(v int) int { return min(n, v) })
}

func TestDefine_FactoryDefaultWithArgument(t *testing.T) {
	type Dummy struct {
		SomeAttr string
	}

	rec, err := record.Define[Dummy](
		record.Field("SomeAttr", record.DefaultFactory(func() string { return "" })),
	)
	require.NoError(t, err)

	d, err := rec.NewNamed(map[string]any{"SomeAttr": "text"})
	require.NoError(t, err)
	assert.Equal(t, "text", d.SomeAttr)

	d, err = rec.New()
	require.NoError(t, err)
	assert.Equal(t, "", d.SomeAttr)
}

func TestValidator_Accepts(t *testing.T) {
	type Dummy struct {
		Email string
	}

	rec := record.MustDefine[Dummy](
		record.Field("Email", record.Validator(record.Convert(validateEmail))),
	)

	d, err := rec.NewNamed(map[string]any{"Email": "text@text.com"})
	require.NoError(t, err)
	assert.Equal(t, "text@text.com", d.Email)
}

func TestValidator_RejectionIsReturnedVerbatim(t *testing.T) {
	type Dummy struct {
		Email string
	}

	rec := record.MustDefine[Dummy](
		record.Field("Email", record.Validator(record.Convert(validateEmail))),
	)

	d, err := rec.New("not_an_email")
	require.Error(t, err)
	assert.Same(t, errNoAt, err)
	assert.Equal(t, Dummy{}, d)
}

func TestValidator_Converts(t *testing.T) {
	type Dummy struct {
		AgeStr string
	}

	rec := record.MustDefine[Dummy](
		record.Field("AgeStr", record.Validator(record.Map(func(v int) string {
			return fmt.Sprintf("%d years old", v)
		}))),
	)

	d, err := rec.New(12)
	require.NoError(t, err)
	assert.Equal(t, "12 years old", d.AgeStr)
}

func TestValidator_ParameterizedClosures(t *testing.T) {
	type Dummy struct {
		V1 int
		V2 int
	}

	rec := record.MustDefine[Dummy](
		record.Field("V1", record.Validator(atLeast(12))),
		record.Field("V2", record.Validator(atMost(8))),
	)

	d, err := rec.New(5, 52)
	require.NoError(t, err)
	assert.Equal(t, Dummy{V1: 12, V2: 8}, d)
}

func TestValidator_SameFactoryDistinctClosures(t *testing.T) {
	type Dummy struct {
		V1 int
		V2 int
	}

	rec, err := record.Define[Dummy](
		record.Field("V1", record.Validator(atLeast(10))),
		record.Field("V2", record.Validator(atLeast(100))),
	)
	require.NoError(t, err)

	d, err := rec.New(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Dummy{V1: 10, V2: 100}, d)
}

func TestValidatedFields(t *testing.T) {
	type Dummy struct {
		V1 int
		V2 int
	}

	floor := atLeast(10)

	rec := record.MustDefine[Dummy](
		record.Field("V1", record.Validator(floor)),
	)

	assert.Equal(t, []string{"V1"}, rec.ValidatedFields(floor))
	assert.Nil(t, rec.ValidatedFields(atLeast(10)))
}

func TestValidator_SameFunctionWrappedTwice(t *testing.T) {
	type Dummy struct {
		V1 string
		V2 string
	}

	_, err := record.Define[Dummy](
		record.Field("V1", record.Validator(record.Map(strings.TrimSpace))),
		record.Field("V2", record.Validator(record.Map(strings.TrimSpace))),
	)
	assert.NoError(t, err)
}

func TestValidator_SharedHandleIsRejected(t *testing.T) {
	type Dummy struct {
		V1 int
		V2 int
		V3 int
	}

	shared := atLeast(1)

	_, err := record.Define[Dummy](
		record.Field("V1", record.Validator(shared)),
		record.Field("V2", record.Validator(shared)),
		record.Field("V3", record.Validator(atLeast(1))),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrDuplicatedValidator)
	assert.NotErrorIs(t, err, record.ErrConfiguration)
	assert.Contains(t, err.Error(), "V1, V2")
}

type fiveLong struct{}

func (fiveLong) Check(v string) error {
	if len(v) != 5 {
		return fmt.Errorf("string %q is not 5 characters long", v)
	}

	return nil
}

func TestValidator_MethodValue(t *testing.T) {
	type Dummy struct {
		String string
	}

	rec := record.MustDefine[Dummy](
		record.Field("String", record.Validator(record.Check(fiveLong{}.Check))),
	)

	_, err := rec.New("too long string")
	require.Error(t, err)

	d, err := rec.New("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", d.String)
}

func TestValidator_MethodExpression(t *testing.T) {
	type Dummy struct {
		String string
	}

	rec := record.MustDefine[Dummy](
		record.Field("String", record.Validator(record.MustTransform(func(v string) error {
			return fiveLong.Check(fiveLong{}, v)
		}))),
	)

	_, err := rec.New("too long string")
	require.Error(t, err)

	_, err = rec.New("12345")
	require.NoError(t, err)
}

func TestDefine_InitFalseWithoutDefault(t *testing.T) {
	type Dummy struct {
		A1 string
		A2 string
	}

	_, err := record.Define[Dummy](
		record.Field("A2", record.Init(false), record.Validator(record.Map(strings.ToUpper))),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrConfiguration)
	assert.Contains(t, err.Error(), `"A2"`)

	var defErr *record.DefinitionError
	require.ErrorAs(t, err, &defErr)
	require.Len(t, defErr.Problems, 1)
	assert.Equal(t, "A2", defErr.Problems[0].Field)
}

func TestDefine_NoConstructorWithRequiredField(t *testing.T) {
	type Dummy struct {
		A1 string
	}

	_, err := record.Define[Dummy](
		record.WithInit(false),
		record.Field("A1", record.Validator(record.Map(strings.ToUpper))),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrConfiguration)
}

func TestDefine_NoConstructorWithExplicitInit(t *testing.T) {
	type Dummy struct {
		A1 string
	}

	_, err := record.Define[Dummy](
		record.WithInit(false),
		record.Field("A1", record.Default("x"), record.Init(true)),
	)
	assert.ErrorIs(t, err, record.ErrConfiguration)
}

func TestDefine_NoConstructorWithDefaults(t *testing.T) {
	type Dummy struct {
		A1 string
		A2 []int
	}

	rec, err := record.Define[Dummy](
		record.WithInit(false),
		record.Field("A1", record.Default("x"), record.Validator(record.Map(strings.ToUpper))),
		record.Field("A2", record.DefaultFactory(func() []int { return []int{1} })),
	)
	require.NoError(t, err)
	assert.False(t, rec.HasInit())
	assert.Empty(t, rec.Params())

	_, err = rec.New()
	assert.ErrorIs(t, err, record.ErrNoConstructor)

	d, err := rec.Defaults()
	require.NoError(t, err)
	assert.Equal(t, Dummy{A1: "X", A2: []int{1}}, d)
}

func TestDefine_PartialInit(t *testing.T) {
	type Dummy struct {
		V1 int
		V2 int
	}

	rec, err := record.Define[Dummy](
		record.Field("V1", record.Validator(record.Map(func(v int) int { return v }))),
		record.Field("V2", record.Init(false), record.Default(7)),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"V1"}, rec.Params())

	d, err := rec.New(3)
	require.NoError(t, err)
	assert.Equal(t, Dummy{V1: 3, V2: 7}, d)

	_, err = rec.New(3, 4)
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)

	_, err = rec.NewNamed(map[string]any{"V1": 1, "V2": 2})
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)
}

func TestDefaultValue_PassesThroughValidator(t *testing.T) {
	type Dummy struct {
		V int
	}

	calls := 0
	rec := record.MustDefine[Dummy](
		record.Field("V", record.Default(10), record.Validator(record.Map(func(v int) int {
			calls++
			return v
		}))),
	)

	d, err := rec.New()
	require.NoError(t, err)
	assert.Equal(t, 10, d.V)
	assert.Equal(t, 1, calls)
}

func TestDefaultFactory_RejectedByValidator(t *testing.T) {
	type Dummy struct {
		V []int
	}

	errEmpty := errors.New("list cannot be empty")

	rec := record.MustDefine[Dummy](
		record.Field("V",
			record.DefaultFactory(func() []int { return []int{} }),
			record.Validator(record.Check(func(v []int) error {
				if len(v) == 0 {
					return errEmpty
				}

				return nil
			})),
		),
	)

	_, err := rec.New()
	assert.Same(t, errEmpty, err)

	d, err := rec.New([]int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, d.V)
}

func TestDefaultFactory_FreshPerInstance(t *testing.T) {
	type Dummy struct {
		Tags []string
	}

	rec := record.MustDefine[Dummy](
		record.Field("Tags", record.DefaultFactory(func() []string { return []string{"new"} })),
	)

	a, err := rec.New()
	require.NoError(t, err)

	b, err := rec.New()
	require.NoError(t, err)

	a.Tags[0] = "changed"
	assert.Equal(t, []string{"new"}, b.Tags)
}

func TestDefaultFactory_ErrorIsReturnedVerbatim(t *testing.T) {
	type Dummy struct {
		ID int
	}

	errExhausted := errors.New("sequence exhausted")

	rec := record.MustDefine[Dummy](
		record.Field("ID", record.DefaultFactory(func() (int, error) { return 0, errExhausted })),
	)

	_, err := rec.New()
	assert.Same(t, errExhausted, err)

	d, err := rec.New(4)
	require.NoError(t, err)
	assert.Equal(t, 4, d.ID)
}

func TestConstruction_FieldsInDeclarationOrder(t *testing.T) {
	type Dummy struct {
		A string
		B string
		C string
	}

	var log []string

	logging := func(name string) *record.Transform {
		return record.Map(func(v string) string {
			log = append(log, name+"="+v)
			return v
		})
	}

	rec := record.MustDefine[Dummy](
		record.Field("C", record.Validator(logging("C")), record.Default("c")),
		record.Field("A", record.Validator(logging("A"))),
		record.Field("B", record.Validator(logging("B"))),
	)

	_, err := rec.NewNamed(map[string]any{"B": "b", "A": "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A=a", "B=b", "C=c"}, log)
}

func TestConstruction_NoSideEffectsOnBindingErrors(t *testing.T) {
	type Dummy struct {
		A string
		B string
	}

	calls := 0
	rec := record.MustDefine[Dummy](
		record.Field("A", record.Validator(record.Map(func(v string) string {
			calls++
			return v
		}))),
	)

	_, err := rec.New("a")
	require.Error(t, err)

	var missing *record.MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"B"}, missing.Fields)
	assert.ErrorIs(t, err, record.ErrMissingArgument)
	assert.Zero(t, calls)
}

func TestConstruction_AllOrNothing(t *testing.T) {
	type Dummy struct {
		A string
		B string
	}

	errB := errors.New("bad b")
	var seenA []string

	rec := record.MustDefine[Dummy](
		record.Field("A", record.Validator(record.Map(func(v string) string {
			seenA = append(seenA, v)
			return v
		}))),
		record.Field("B", record.Validator(record.Check(func(string) error { return errB }))),
	)

	d, err := rec.New("a", "b")
	assert.Same(t, errB, err)
	assert.Equal(t, Dummy{}, d)
	assert.Equal(t, []string{"a"}, seenA)
}

func TestConstruction_AllFieldsSupplied(t *testing.T) {
	type Dummy struct {
		Name  string
		Count int
		Ratio float64
		On    bool
	}

	rec := record.MustDefine[Dummy](
		record.Field("Ratio", record.Default(0.5)),
		record.Field("On", record.Default(true)),
	)

	d, err := rec.New("n", 3)
	require.NoError(t, err)
	assert.Equal(t, Dummy{Name: "n", Count: 3, Ratio: 0.5, On: true}, d)

	d, err = rec.Build([]any{"m"}, map[string]any{"Count": 1, "On": false, "Ratio": 2})
	require.NoError(t, err)
	assert.Equal(t, Dummy{Name: "m", Count: 1, Ratio: 2, On: false}, d)

	_, err = rec.Build([]any{"m"}, map[string]any{"Name": "again", "Count": 1})
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)

	_, err = rec.NewNamed(map[string]any{"Nmae": "typo", "Count": 1})
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)
}

func TestConstruction_ArgumentTypeMismatch(t *testing.T) {
	type Dummy struct {
		Small int8
		Name  string
	}

	rec := record.MustDefine[Dummy]()

	_, err := rec.New(300, "x")
	assert.ErrorIs(t, err, record.ErrArgumentType)

	_, err = rec.New(12, 5)
	assert.ErrorIs(t, err, record.ErrArgumentType)

	d, err := rec.New(int64(12), "x")
	require.NoError(t, err)
	assert.Equal(t, int8(12), d.Small)
}

func TestConstruction_ValidatorInputMismatch(t *testing.T) {
	type Dummy struct {
		N string
	}

	rec := record.MustDefine[Dummy](
		record.Field("N", record.Validator(record.Map(strconv.Itoa))),
	)

	_, err := rec.New("not an int")

	var argErr *record.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "N", argErr.Field)
	assert.ErrorIs(t, err, record.ErrArgumentType)
}

type window struct {
	From int
	To   int
}

var errWindow = errors.New("window ends before it starts")

func (w *window) PostInit() error {
	if w.To < w.From {
		return errWindow
	}

	return nil
}

func TestConstruction_PostInit(t *testing.T) {
	rec := record.MustDefine[window]()

	w, err := rec.New(1, 5)
	require.NoError(t, err)
	assert.Equal(t, window{From: 1, To: 5}, w)

	_, err = rec.New(5, 1)
	assert.Same(t, errWindow, err)
}

func TestReplace(t *testing.T) {
	type Dummy struct {
		Name  string
		Count int
		Seq   int
	}

	seq := 0
	rec := record.MustDefine[Dummy](
		record.Field("Name", record.Validator(record.Map(strings.ToLower))),
		record.Field("Seq", record.Init(false), record.DefaultFactory(func() int {
			seq++
			return seq
		})),
	)

	d, err := rec.New("ANN", 1)
	require.NoError(t, err)
	assert.Equal(t, Dummy{Name: "ann", Count: 1, Seq: 1}, d)

	r, err := rec.Replace(d, map[string]any{"Count": 2, "Name": "BOB"})
	require.NoError(t, err)
	assert.Equal(t, Dummy{Name: "bob", Count: 2, Seq: 2}, r)

	_, err = rec.Replace(d, map[string]any{"Seq": 10})
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)

	_, err = rec.Replace(d, map[string]any{"Unknown": 10})
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)
}

func TestDefine_WithTagKey(t *testing.T) {
	type Dummy struct {
		Name  string
		Count int `rec:"default=3" record:"-"`
	}

	rec := record.MustDefine[Dummy](record.WithTagKey("rec"))
	assert.Equal(t, []string{"Name", "Count"}, rec.Params())

	d, err := rec.New("x")
	require.NoError(t, err)
	assert.Equal(t, Dummy{Name: "x", Count: 3}, d)
}

func TestDefine_TagInitAfterDefault(t *testing.T) {
	type Dummy struct {
		A string `record:"default=x,init=false"`
	}

	rec := record.MustDefine[Dummy]()

	f, ok := rec.Field("A")
	require.True(t, ok)
	assert.Equal(t, "x", f.Default)
	assert.False(t, f.IncludeInInit)
	assert.Empty(t, rec.Params())

	_, err := rec.New("supplied")
	assert.ErrorIs(t, err, record.ErrUnexpectedArgument)

	d, err := rec.New()
	require.NoError(t, err)
	assert.Equal(t, Dummy{A: "x"}, d)
}

func TestDefine_TagDefaultFitsValidatorInput(t *testing.T) {
	type Dummy struct {
		AgeStr string `record:"default=12"`
	}

	rec, err := record.Define[Dummy](
		record.Field("AgeStr", record.Validator(record.Map(strconv.Itoa))),
	)
	require.NoError(t, err)

	f, _ := rec.Field("AgeStr")
	assert.Equal(t, 12, f.Default)

	d, err := rec.New()
	require.NoError(t, err)
	assert.Equal(t, "12", d.AgeStr)

	d, err = rec.New(7)
	require.NoError(t, err)
	assert.Equal(t, "7", d.AgeStr)
}

func TestDefine_TagDefaultMismatch(t *testing.T) {
	type Dummy struct {
		Count int `record:"default=many"`
	}

	_, err := record.Define[Dummy]()
	require.ErrorIs(t, err, record.ErrConfiguration)
	assert.Contains(t, err.Error(), record.CodeDefaultTypeMismatch)
}

func TestAsMapAndFields(t *testing.T) {
	type Dummy struct {
		Name   string
		Hidden string `record:"-"`
		Count  int    `record:"default=3"`
		note   string //nolint:unused
	}

	rec := record.MustDefine[Dummy]()

	d, err := rec.New("x")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Name": "x", "Count": 3}, rec.AsMap(d))

	fields := rec.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "Name", fields[0].Name)
	assert.Equal(t, record.ModeNone, fields[0].DefaultMode)
	assert.Equal(t, "Count", fields[1].Name)
	assert.Equal(t, 2, fields[1].Index)
	assert.Equal(t, record.ModeLiteral, fields[1].DefaultMode)
	assert.Equal(t, "literal", fields[1].DefaultMode.String())

	_, ok := rec.Field("Hidden")
	assert.False(t, ok)
	assert.Equal(t, "record_test.Dummy", rec.Name())
}
