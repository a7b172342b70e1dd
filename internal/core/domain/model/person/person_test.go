package person_test

import (
	"testing"

	"encargos/internal/core/domain/model/kernel"
	"encargos/internal/core/domain/model/person"
	"encargos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tenant = kernel.MustTenantID("centro")

func TestNewPerson(t *testing.T) {
	t.Run("should normalize contact data", func(t *testing.T) {
		p, err := person.NewPerson(kernel.NewUUID(), tenant, " Ana  García ", "600-111-222", " ana@mail.es ",
			person.Preferences{Phone: true, Email: true})

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "Ana García", p.Name())
		assert.Equal(t, "600111222", p.Phone())
		assert.Equal(t, "ana@mail.es", p.Email())
		assert.Equal(t, []person.Channel{person.WhatsApp, person.Email}, p.Channels())
	})

	t.Run("email notifications need an email", func(t *testing.T) {
		_, err := person.NewPerson(kernel.NewUUID(), tenant, "Ana", "600111222", "",
			person.Preferences{Email: true})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("name and phone are required", func(t *testing.T) {
		_, err := person.NewPerson(kernel.NewUUID(), tenant, "", "", "", person.Preferences{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p person.Person
		require.ErrorIs(t, p.Validate(), person.ErrPersonIsNotConstructed)
	})
}

func TestPerson_Channels(t *testing.T) {
	tests := []struct {
		name  string
		email string
		prefs person.Preferences
		want  []person.Channel
	}{
		{"none", "", person.Preferences{}, []person.Channel{}},
		{"whatsapp only", "", person.Preferences{Phone: true}, []person.Channel{person.WhatsApp}},
		{"email only", "a@b.es", person.Preferences{Email: true}, []person.Channel{person.Email}},
		{"email present but not opted in", "a@b.es", person.Preferences{}, []person.Channel{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := person.NewPerson(kernel.NewUUID(), tenant, "Ana", "600111222", tt.email, tt.prefs)
			require.NoError(t, err)

			assert.Equal(t, tt.want, p.Channels())
			for _, c := range tt.want {
				assert.True(t, p.Accepts(c))
			}
		})
	}
}

func TestPerson_Mutators(t *testing.T) {
	p, err := person.NewPerson(kernel.NewUUID(), tenant, "Ana", "600111222", "", person.Preferences{})
	require.NoError(t, err)

	require.NoError(t, p.Rename("Ana García"))
	assert.Equal(t, "Ana García", p.Name())
	require.Error(t, p.Rename(" "))

	require.NoError(t, p.ChangePhone("611 222 333"))
	assert.Equal(t, "611222333", p.Phone())
	require.Error(t, p.ChangePhone(""))

	require.Error(t, p.UpdateContactPreferences("", person.Preferences{Email: true}))
	require.NoError(t, p.UpdateContactPreferences("ana@mail.es", person.Preferences{Email: true}))
	assert.True(t, p.Accepts(person.Email))
	assert.False(t, p.Accepts(person.WhatsApp))

	assert.Equal(t, "Ana García", p.Contact().Name())
	assert.Equal(t, "611222333", p.Contact().Phone())
}

func TestParseChannel(t *testing.T) {
	c, err := person.ParseChannel("WhatsApp")
	require.NoError(t, err)
	assert.Equal(t, person.WhatsApp, c)

	c, err = person.ParseChannel("email")
	require.NoError(t, err)
	assert.Equal(t, "email", c.String())

	_, err = person.ParseChannel("sms")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
