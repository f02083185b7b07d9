package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	info, identity, err := ParseDSN("app:secret@tcp(db.internal:3307)/shop?parseTime=true")
	require.NoError(t, err)

	assert.Equal(t, DriverName, info.Driver)
	assert.Equal(t, "db.internal", info.Host)
	assert.Equal(t, 3307, info.Port)
	assert.Equal(t, "shop", info.DBName)
	assert.Equal(t, "mysql:app@tcp(db.internal:3307)/shop", identity)
	assert.NotContains(t, identity, "secret")
}

func TestParseDSN_DefaultAddress(t *testing.T) {
	info, _, err := ParseDSN("mysql://root@/test")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", info.Host)
	assert.Equal(t, 3306, info.Port)
	assert.Equal(t, "test", info.DBName)
}

func TestParseDSN_Invalid(t *testing.T) {
	_, _, err := ParseDSN("not a dsn")
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`users`", quoteIdent("users"))
	assert.Equal(t, "`shop`.`orders`", quoteIdent("shop.orders"))
	assert.Equal(t, "`we``ird`", quoteIdent("we`ird"))
}
