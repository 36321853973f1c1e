package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceRequestValidate(t *testing.T) {
	valid := serviceRequest{Name: "Yoga", Duration: 60, Price: 150}

	tests := []struct {
		name    string
		mutate  func(*serviceRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *serviceRequest) {}},
		{name: "blank name", mutate: func(r *serviceRequest) { r.Name = "   " }, wantErr: true},
		{name: "name too long", mutate: func(r *serviceRequest) { r.Name = strings.Repeat("x", 101) }, wantErr: true},
		{name: "duration too short", mutate: func(r *serviceRequest) { r.Duration = 10 }, wantErr: true},
		{name: "duration too long", mutate: func(r *serviceRequest) { r.Duration = 181 }, wantErr: true},
		{name: "duration at bounds", mutate: func(r *serviceRequest) { r.Duration = 15 }},
		{name: "free is not allowed", mutate: func(r *serviceRequest) { r.Price = 0 }, wantErr: true},
		{name: "price too high", mutate: func(r *serviceRequest) { r.Price = 10001 }, wantErr: true},
		{name: "description too long", mutate: func(r *serviceRequest) { r.Description = strings.Repeat("x", 501) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			reason := req.validate()
			if tt.wantErr {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
