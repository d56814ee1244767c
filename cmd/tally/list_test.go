package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListCmd(t *testing.T) {
	cmd := listCmd()

	limitFlag := cmd.Flag("limit")
	assert.NotNil(t, limitFlag, "limit flag should exist")
	assert.Equal(t, "10", limitFlag.DefValue, "default limit should be 10")

	typeFlag := cmd.Flag("type")
	assert.NotNil(t, typeFlag, "type flag should exist")
	assert.Equal(t, "all", typeFlag.DefValue, "default type filter should be all")
}
