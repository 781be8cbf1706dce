package material

import (
	"errors"
	"testing"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

func TestNewPhong_EnergyConservation(t *testing.T) {
	ambient := NewLambertian(0.25, core.White)

	tests := []struct {
		name    string
		kd, ks  float64
		wantErr bool
	}{
		{"well below one", 0.6, 0.2, false},
		{"just below one", 0.5, 0.4999, false},
		{"exactly one", 0.5, 0.5, true},
		{"above one", 0.9, 0.3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPhong(ambient, NewLambertian(tt.kd, core.White), NewGlossySpecular(tt.ks, 20))
			if tt.wantErr != errors.Is(err, ErrEnergyConservation) {
				t.Errorf("NewPhong(kd=%g, ks=%g) error = %v, wantErr %v", tt.kd, tt.ks, err, tt.wantErr)
			}

			_, err = NewReflective(ambient, NewLambertian(tt.kd, core.White), NewGlossySpecular(tt.ks, 20), NewPerfectSpecular(0.75, core.White))
			if tt.wantErr != errors.Is(err, ErrEnergyConservation) {
				t.Errorf("NewReflective(kd=%g, ks=%g) error = %v, wantErr %v", tt.kd, tt.ks, err, tt.wantErr)
			}
		})
	}
}

func TestMustPhong_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for kd + ks >= 1")
		}
	}()
	MustPhong(NewLambertian(0.25, core.White), NewLambertian(0.7, core.White), NewGlossySpecular(0.3, 5))
}

func TestEmissive_Radiance(t *testing.T) {
	m := NewEmissive(4, core.NewVec3(1, 0.5, 0.25))
	if got := m.Radiance(); got != core.NewVec3(4, 2, 1) {
		t.Errorf("Expected (4,2,1), got %v", got)
	}
	if !m.IsEmissive() {
		t.Error("Expected emissive material")
	}

	matte := NewMatte(NewLambertian(0.5, core.White), NewLambertian(1, core.White))
	if got := matte.Radiance(); !got.IsZero() {
		t.Errorf("Expected non-emissive radiance to be black, got %v", got)
	}
}
