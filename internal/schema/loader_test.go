package schema

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	data := `
package: record-generator/examples/account
records:
  - type: Account
    fields:
      - name: Email
        validator: ValidateEmail
      - name: Age
        default: 18
        validator: AtLeast(18)
      - name: Tags
        default_factory: NewTags
        init: false
      - name: Nickname
        default: null
  - type: Settings
    init: false
`

	f, err := Parse([]byte(data))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version)
	assert.Equal(t, "record-generator/examples/account", f.Package)
	require.Len(t, f.Records, 2)

	acc := f.Records[0]
	assert.Equal(t, "Account", acc.Type)
	assert.True(t, acc.InitEnabled())
	assert.Equal(t, "NewAccount", acc.Constructor)
	require.Len(t, acc.Fields, 4)

	email := acc.Fields[0]
	assert.Equal(t, "ValidateEmail", email.Validator)
	assert.False(t, email.HasDefault())
	assert.True(t, email.InitEnabled())
	assert.Nil(t, email.Init)

	age := acc.Fields[1]
	require.True(t, age.HasDefault())
	v, err := age.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 18, v)

	tags := acc.Fields[2]
	assert.Equal(t, "NewTags", tags.DefaultFactory)
	assert.False(t, tags.InitEnabled())
	require.NotNil(t, tags.Init)

	nick := acc.Fields[3]
	assert.True(t, nick.HasDefault())
	v, err = nick.DefaultValue()
	require.NoError(t, err)
	assert.Nil(t, v)

	settings := f.Records[1]
	assert.False(t, settings.InitEnabled())
	assert.Empty(t, settings.Constructor)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("records: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse declaration YAML")
}

func TestField_DefaultValue(t *testing.T) {
	var f Field

	v, err := f.DefaultValue()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, f.SetDefault("light"))
	v, err = f.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "light", v)

	require.NoError(t, f.SetDefault([]string{"a"}))
	assert.Equal(t, yaml.SequenceNode, f.Default.Kind)

	_, err = f.DefaultValue()
	assert.ErrorContains(t, err, "sequence")
}

func TestLoadFile_AccountExample(t *testing.T) {
	f, err := LoadFile(filepath.Join("..", "..", "examples", "account", "records.yaml"))
	require.NoError(t, err)

	require.Len(t, f.Records, 3)
	assert.Equal(t, []string{"Account", "Settings", "Window"},
		[]string{f.Records[0].Type, f.Records[1].Type, f.Records[2].Type})
	assert.Equal(t, "NewWindow", f.Records[2].Constructor)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	f := &File{
		Version: CurrentVersion,
		Package: "record-generator/examples/account",
		Records: []Record{{
			Type:   "Account",
			Fields: []Field{{Name: "Email", Validator: "ValidateEmail"}, {Name: "Tags", Init: Bool(false)}},
		}},
	}
	require.NoError(t, f.Records[0].Fields[1].SetDefault(nil))

	path := filepath.Join(t.TempDir(), "records.yaml")
	require.NoError(t, WriteFile(f, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	require.Len(t, loaded.Records, 1)
	assert.Equal(t, "NewAccount", loaded.Records[0].Constructor)

	email := loaded.Records[0].Fields[0]
	assert.Equal(t, "ValidateEmail", email.Validator)
	assert.False(t, email.HasDefault())

	tags := loaded.Records[0].Fields[1]
	assert.False(t, tags.InitEnabled())
	assert.True(t, tags.HasDefault())
}

func TestMarshal_OmitsUnsetDefault(t *testing.T) {
	data, err := Marshal(&File{
		Version: CurrentVersion,
		Package: "p",
		Records: []Record{{Type: "T", Fields: []Field{{Name: "A"}}}},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "default")
	assert.NotContains(t, string(data), "init")
}
