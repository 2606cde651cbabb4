//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; delivery is then disabled.
func (c *TaskQueueConfig) Validate() error {
	return nil
}
