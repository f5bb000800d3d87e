package geo

import "testing"

func TestDistance(t *testing.T) {
	t.Run("identical points are zero", func(t *testing.T) {
		if d := Distance(59.3293, 18.0686, 59.3293, 18.0686); d != 0 {
			t.Fatalf("expected 0, got %d", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Distance(48.8566, 2.3522, 35.6762, 139.6503)
		b := Distance(35.6762, 139.6503, 48.8566, 2.3522)
		if a != b {
			t.Fatalf("expected symmetry, got %d and %d", a, b)
		}
		if a <= 0 {
			t.Fatalf("expected positive distance, got %d", a)
		}
	})

	t.Run("known distance Paris to Tokyo", func(t *testing.T) {
		d := Distance(48.8566, 2.3522, 35.6762, 139.6503)
		// Great-circle distance is roughly 9710 km.
		if d < 9650 || d < 0 || d > 9770 {
			t.Fatalf("expected roughly 9710 km, got %d", d)
		}
	})

	t.Run("antipodal points near half circumference", func(t *testing.T) {
		d := Distance(0, 0, 0, 180)
		if d < 20000 || d > 20050 {
			t.Fatalf("expected about 20015 km, got %d", d)
		}
	})
}
