// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Logging interface used throughout the converter, plus a few implementations
// (stdout, in-memory for tests, and a null logger)
package logger

import "fmt"

// LogLevel - log level type
type LogLevel int

const (

	// LogDebug - DEBUG log level, used for per-dataset progress messages
	LogDebug LogLevel = iota

	// LogInfo - INFO log level
	LogInfo LogLevel = iota

	// LogError - ERROR log level (does not call os.Exit!)
	LogError LogLevel = iota
)

var logLevelPrefix = map[LogLevel]string{
	LogDebug: "DEBUG",
	LogInfo:  "INFO",
	LogError: "ERROR",
}

// ILogger - Generic logger interface
type ILogger interface {
	Printf(level LogLevel, format string, a ...interface{})
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// LevelFromVerbosity - Converts the converters "verbosity" setting into a log level.
// Anything above 1 gets the chatty per-band progress output.
func LevelFromVerbosity(verbosity int) LogLevel {
	if verbosity > 1 {
		return LogDebug
	}
	if verbosity == 1 {
		return LogInfo
	}
	return LogError
}

// ParseLogLevel - Reads a level name as given on a command line
func ParseLogLevel(name string) (LogLevel, error) {
	for level, prefix := range logLevelPrefix {
		if prefix == name {
			return level, nil
		}
	}
	return LogInfo, fmt.Errorf("unknown log level: %v", name)
}

func formatLine(level LogLevel, format string, a ...interface{}) string {
	return logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...)
}
