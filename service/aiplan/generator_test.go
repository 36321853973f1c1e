package aiplan

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want string
	}{
		{name: "underweight", bmi: 17.0, want: "Zayıf"},
		{name: "normal lower bound", bmi: 18.5, want: "Normal kilo"},
		{name: "normal", bmi: 22.9, want: "Normal kilo"},
		{name: "overweight lower bound", bmi: 25.0, want: "Fazla kilolu"},
		{name: "overweight", bmi: 29.9, want: "Fazla kilolu"},
		{name: "obese lower bound", bmi: 30.0, want: "Obez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(bmiCategory(tt.bmi), tt.want),
				"bmiCategory(%v) = %q", tt.bmi, bmiCategory(tt.bmi))
		})
	}
}

func TestCalorieTarget(t *testing.T) {
	// 70 kg, 175 cm: base BMR = 10*70 + 6.25*175 - 150 + 5 = 1648 (truncated)
	baseBMR := 10*70.0 + 6.25*175.0 - 5*30 + 5
	base := int(baseBMR)

	tests := []struct {
		goal string
		want int
	}{
		{goal: "Weight Loss", want: base - 500},
		{goal: "weight loss", want: base - 500},
		{goal: "Muscle Gain", want: base + 500},
		{goal: "Maintenance", want: base},
		{goal: "something else", want: base},
	}

	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			assert.Equal(t, tt.want, calorieTarget(70, 175, tt.goal))
		})
	}
}

func TestGenerateWithoutAPIKeyUsesFallback(t *testing.T) {
	g := NewGenerator("")
	plan := g.Generate(context.Background(), 70, 175, "Weight Loss", nil, "")

	assert.Contains(t, plan, "BMI: 22.86")
	assert.Contains(t, plan, "Normal kilo")
	assert.Contains(t, plan, "Hedef: Weight Loss")

	target := calorieTarget(70, 175, "Weight Loss")
	assert.Contains(t, plan, "kalori")
	assert.Contains(t, plan, "1148")
	assert.Equal(t, 1148, target)
}

func TestRetryPause(t *testing.T) {
	assert.Equal(t, retryDelay, retryPause(1, nil))
	assert.Equal(t, retryDelay, retryPause(len(geminiModels)-1, nil))
	assert.Zero(t, retryPause(len(geminiModels), nil), "no pause after the last model")
	assert.Zero(t, retryPause(1, context.DeadlineExceeded), "no pause once the deadline has passed")
}

func TestPlanRequestValidate(t *testing.T) {
	age := 25
	badAge := 5

	tests := []struct {
		name    string
		req     planRequest
		wantErr bool
	}{
		{name: "valid", req: planRequest{Weight: 70, Height: 175, Goal: "Weight Loss"}},
		{name: "valid with age", req: planRequest{Weight: 70, Height: 175, Goal: "Muscle Gain", Age: &age}},
		{name: "weight too low", req: planRequest{Weight: 20, Height: 175, Goal: "Weight Loss"}, wantErr: true},
		{name: "weight too high", req: planRequest{Weight: 301, Height: 175, Goal: "Weight Loss"}, wantErr: true},
		{name: "height too low", req: planRequest{Weight: 70, Height: 90, Goal: "Weight Loss"}, wantErr: true},
		{name: "missing goal", req: planRequest{Weight: 70, Height: 175, Goal: "  "}, wantErr: true},
		{name: "age out of range", req: planRequest{Weight: 70, Height: 175, Goal: "Weight Loss", Age: &badAge}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := tt.req.validate()
			if tt.wantErr {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
