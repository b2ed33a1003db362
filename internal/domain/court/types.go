package court

// Status drives bookability: anything other than StatusActive yields
// zero available slots regardless of the weekly schedule.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	default:
		return false
	}
}

func (s Status) IsBookable() bool {
	return s == StatusActive
}

type Surface string

const (
	SurfaceHard       Surface = "hard"
	SurfaceClay       Surface = "clay"
	SurfaceGrass      Surface = "grass"
	SurfaceArtificial Surface = "artificial"
)

func (s Surface) String() string {
	return string(s)
}

func (s Surface) IsValid() bool {
	switch s {
	case SurfaceHard, SurfaceClay, SurfaceGrass, SurfaceArtificial:
		return true
	default:
		return false
	}
}
