package domain

type ReassignPolicy string

const (
	// ReassignPolicyPermissive переносит смену без проверок, как это делала консоль
	ReassignPolicyPermissive ReassignPolicy = "permissive"
	// ReassignPolicyStrict запрещает перенос в прошлое и на занятые часы
	ReassignPolicyStrict ReassignPolicy = "strict"
)

func (p ReassignPolicy) IsKnown() bool {
	return p == ReassignPolicyPermissive || p == ReassignPolicyStrict
}
