package entity

import "testing"

func TestAction_Notifiable(t *testing.T) {
	tests := []struct {
		action Action
		want   bool
	}{
		{ActionUserRegistered, true},
		{ActionUserPasswordReset, true},
		{ActionEntryCreated, false},
		{ActionEntryDeleted, false},
		{Action("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			if got := tt.action.Notifiable(); got != tt.want {
				t.Fatalf("Notifiable() = %v, want %v", got, tt.want)
			}
		})
	}
}
