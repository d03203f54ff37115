package mathutil

// Fixed camera conventions shared by every scene.
var (
	// DefaultUp is the world up axis (Z-up).
	DefaultUp = Vec3{0, 0, 1}
)

// ReflectPlaneZ is the height of the mirror plane used by LookAt's reflect
// mode (the water surface in the cone scene).
const ReflectPlaneZ = -20.0

// ReflectZ mirrors v across the plane z = ReflectPlaneZ.
func ReflectZ(v Vec3) Vec3 {
	return Vec3{v[0], v[1], 2*ReflectPlaneZ - v[2]}
}
