package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateManagerHashesPassword(t *testing.T) {
	m, err := CreateManager("admin", "adminpassword", "Administrator")
	require.NoError(t, err)

	assert.NotEqual(t, "adminpassword", m.Password)
	assert.True(t, m.CheckPassword("adminpassword"))
	assert.False(t, m.CheckPassword("wrongpassword"))
}

func TestCreateManagerValidation(t *testing.T) {
	_, err := CreateManager("ab", "adminpassword", "Administrator")
	assert.Error(t, err)

	_, err = CreateManager("admin", "short", "Administrator")
	assert.Error(t, err)

	_, err = CreateManager("admin", "adminpassword", "")
	assert.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	m, err := CreateManager("admin", "adminpassword", "Administrator")
	require.NoError(t, err)

	require.NoError(t, m.SetPassword("newpassword"))
	assert.False(t, m.CheckPassword("adminpassword"))
	assert.True(t, m.CheckPassword("newpassword"))
}
