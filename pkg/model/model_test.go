package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStateString(t *testing.T) {
	tests := []struct {
		state JobState
		want  string
	}{
		{JobStateAccepted, "Accepted"},
		{JobStateKillInitiated, "KillInitiated"},
		{JobStateFinished, "Finished"},
		{JobState(0), "Unspecified"},
		{JobState(99), "Unspecified"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestTaskStateString(t *testing.T) {
	tests := []struct {
		state TaskState
		want  string
	}{
		{TaskStateAccepted, "Accepted"},
		{TaskStateLaunched, "Launched"},
		{TaskStateStartInitiated, "StartInitiated"},
		{TaskStateStarted, "Started"},
		{TaskStateKillInitiated, "KillInitiated"},
		{TaskStateDisconnected, "Disconnected"},
		{TaskStateFinished, "Finished"},
		{TaskState(0), "Unspecified"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestMountPermString(t *testing.T) {
	tests := []struct {
		perm MountPerm
		want string
	}{
		{MountPermRO, "RO"},
		{MountPermWO, "WO"},
		{MountPermRW, "RW"},
		{MountPerm(0), "Unspecified"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.perm.String())
	}
}
