package instance

import "os"

// GetID names this worker instance for log correlation. Deployments set
// WORKER_ID per replica; locally everything is worker-0.
func GetID() string {
	if id := os.Getenv("WORKER_ID"); id != "" {
		return id
	}
	return "worker-0"
}
