package scene

import "testing"

func TestCSGSettingsDefaults(t *testing.T) {
	s := NewCSGSettings()
	if !s.Enabled() {
		t.Error("CSG not enabled by default")
	}
	if s.Algorithm() != AlgorithmAuto {
		t.Errorf("algorithm = %v, want %v", s.Algorithm(), AlgorithmAuto)
	}
	if s.DepthAlgorithm() != DepthOff {
		t.Errorf("depth algorithm = %v, want %v", s.DepthAlgorithm(), DepthOff)
	}
	if s.Optimization() != OptimizationDefault {
		t.Errorf("optimization = %v, want %v", s.Optimization(), OptimizationDefault)
	}
	if s.Convexity() != DefaultConvexity {
		t.Errorf("convexity = %d, want %d", s.Convexity(), DefaultConvexity)
	}
}

func TestSetConvexityIgnoresZero(t *testing.T) {
	s := NewCSGSettings()
	s.SetConvexity(5)
	if s.Convexity() != 5 {
		t.Fatalf("convexity = %d, want 5", s.Convexity())
	}
	s.SetConvexity(0)
	if s.Convexity() != 5 {
		t.Errorf("convexity = %d after setting 0, want 5 kept", s.Convexity())
	}
}

func TestSettingsReadModifyApply(t *testing.T) {
	d := NewDisplayBase()

	s := d.Settings()
	s.EnableCSG(false)
	s.SetAlgorithm(AlgorithmSCS)
	s.SetDepthAlgorithm(DepthOcclusionQuery)
	s.SetOptimization(OptimizationOff)
	s.SetConvexity(3)

	if !d.Settings().Enabled() {
		t.Error("modifying the copy changed the display settings")
	}

	d.ApplySettings(s)

	got := d.Settings()
	if got.Enabled() {
		t.Error("CSG still enabled after applying the modified settings")
	}
	if got.Algorithm() != AlgorithmSCS {
		t.Errorf("algorithm = %v, want %v", got.Algorithm(), AlgorithmSCS)
	}
	if got.DepthAlgorithm() != DepthOcclusionQuery {
		t.Errorf("depth algorithm = %v, want %v", got.DepthAlgorithm(), DepthOcclusionQuery)
	}
	if got.Optimization() != OptimizationOff {
		t.Errorf("optimization = %v, want %v", got.Optimization(), OptimizationOff)
	}
	if got.Convexity() != 3 {
		t.Errorf("convexity = %d, want 3", got.Convexity())
	}
}

func TestAlgorithmString(t *testing.T) {
	tests := []struct {
		a    Algorithm
		want string
	}{
		{AlgorithmAuto, "Auto"},
		{AlgorithmGoldfeather, "Goldfeather"},
		{AlgorithmSCS, "SCS"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Algorithm(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}
