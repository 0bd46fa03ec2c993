package health

// Data is the health check payload.
type Data struct {
	OK bool `json:"ok" doc:"Always true while the process serves requests" example:"true"`
}

// Output wraps the health check payload.
type Output struct {
	Body Data
}
