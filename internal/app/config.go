package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Constants
const (
	DefaultConfigFile = "config.toml"
	DefaultSortField  = "days"
	FilePermissions   = 0644
	TmpSuffix         = ".tmp"

	// Output files (working directory, fixed names)
	HTMLFile = "timeline.html"
	CSVFile  = "timeline.csv"
	ICSFile  = "timeline.ics"

	// Date format used by the campus timeline (dd/mm/yyyy)
	DateLayout = "02/01/2006"

	// ICS constants
	ICSProductID = "-//UOC Tools//Timeline//EN"

	// Notification constants
	NotifyAppName = "Timeline UOC"
	NotifyTimeout = 10 * time.Second

	// All date math is relative to "today" in this timezone, never the
	// machine's local time.
	Timezone = "Europe/Madrid"
)

// CSVHeader is the fixed header row of timeline.csv. The HTML table and
// the ICS events follow the same column contract.
var CSVHeader = []string{"Activity name", "Classroom name", "Activity type", "Days", "Start", "End", "Completed"}

// Config mirrors config.toml. Key names follow the campus tool's
// established config file, so an existing file keeps working.
type Config struct {
	Username            string            `toml:"username"`
	Password            string            `toml:"password"`
	ClassroomIDs        []string          `toml:"classroomIds"`
	ClassroomNames      map[string]string `toml:"classroomId_names"`
	ClassroomColors     map[string]string `toml:"classroomId_colors"`
	ClassroomSubjectIDs map[string]string `toml:"classroomId_subjectIds"`
	ChromePath          string            `toml:"path_executable_chrome"`
}

// LoadConfig reads and decodes the TOML config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return &cfg, nil
}

// Validate checks the config surface before anything touches the
// network. Any failure here aborts the whole run.
func (c *Config) Validate() error {
	if c.Username == "" || len(c.ClassroomIDs) == 0 {
		return &ConfigError{Reason: "some parameter (username and/or classroomIds) not found in config file"}
	}
	if c.ClassroomNames == nil || c.ClassroomColors == nil || c.ClassroomSubjectIDs == nil {
		return &ConfigError{Reason: "some parameter (classroomId_names, classroomId_colors and/or classroomId_subjectIds) not found in config file"}
	}
	if len(c.ClassroomNames) != len(c.ClassroomColors) || len(c.ClassroomColors) != len(c.ClassroomSubjectIDs) {
		return &ConfigError{Reason: "some parameter (classroomId_names, classroomId_colors and/or classroomId_subjectIds) with different length in config file"}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); err != nil {
			return &ConfigError{Reason: fmt.Sprintf("browser executable not found: %s", c.ChromePath)}
		}
	}
	return nil
}

// Classrooms resolves the configured ids into Classroom values, in the
// configured order. Ids absent from the subject mapping cannot produce a
// classroom URL and are skipped.
func (c *Config) Classrooms() []Classroom {
	classrooms := make([]Classroom, 0, len(c.ClassroomIDs))
	for _, id := range c.ClassroomIDs {
		subjectID, ok := c.ClassroomSubjectIDs[id]
		if !ok {
			log.Printf("⚠️  Classroom %s has no subject id configured, skipping", id)
			continue
		}
		classrooms = append(classrooms, Classroom{
			ID:        id,
			Name:      c.ClassroomNames[id],
			Color:     c.ClassroomColors[id],
			SubjectID: subjectID,
		})
	}
	return classrooms
}
