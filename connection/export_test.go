package connection

// Internal hooks for the external test package.
var (
	TimeConstant22General   = timeConstant22General
	TimeConstant22NearUnity = timeConstant22NearUnity
)
