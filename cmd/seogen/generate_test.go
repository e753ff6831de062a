package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkerjr2/seogen/internal/types"
)

func TestCheckGenerateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     types.PageRequest
		wantErr string
	}{
		{
			name: "service city complete",
			req:  types.PageRequest{Service: "Gutter Repair", City: "Tulsa", BusinessName: "Acme"},
		},
		{
			name:    "service city missing service",
			req:     types.PageRequest{City: "Tulsa", BusinessName: "Acme"},
			wantErr: "--service is required",
		},
		{
			name:    "service city missing city",
			req:     types.PageRequest{Service: "Gutter Repair", BusinessName: "Acme"},
			wantErr: "--city is required",
		},
		{
			name: "service hub with service",
			req:  types.PageRequest{PageMode: types.ModeServiceHub, Service: "Gutter Repair", BusinessName: "Acme"},
		},
		{
			name: "service hub with hub label only",
			req:  types.PageRequest{PageMode: types.ModeServiceHub, HubLabel: "Roofing Services", BusinessName: "Acme"},
		},
		{
			name:    "service hub missing both",
			req:     types.PageRequest{PageMode: types.ModeServiceHub, BusinessName: "Acme"},
			wantErr: "--service or --hub-label",
		},
		{
			name: "city hub with city",
			req:  types.PageRequest{PageMode: types.ModeCityHub, City: "Tulsa", BusinessName: "Acme"},
		},
		{
			name:    "city hub missing city",
			req:     types.PageRequest{PageMode: types.ModeCityHub, BusinessName: "Acme"},
			wantErr: "--city is required",
		},
		{
			name:    "unknown mode",
			req:     types.PageRequest{PageMode: "billboard", Service: "x", City: "y", BusinessName: "Acme"},
			wantErr: "unknown mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkGenerateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
