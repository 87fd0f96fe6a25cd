package assets

import (
	"os"

	"github.com/beevik/etree"
	"github.com/spf13/afero"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

// LoggingConfig summarizes a log4j2 XML logging configuration.
type LoggingConfig struct {
	Status    string
	Appenders []Appender
	RootLevel string
	Loggers   []string
}

// Appender is one configured log4j2 appender.
type Appender struct {
	Type string
	Name string
}

// InspectLoggingConfig parses the log4j2 configuration at file.
func InspectLoggingConfig(fsys afero.Fs, file string) (*LoggingConfig, error) {
	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "logging configuration is not present").
				WithDetail("path", file)
		}
		return nil, errors.Wrap(err, errors.ErrIO, "cannot read logging configuration").
			WithDetail("path", file)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrParse, "malformed logging configuration").
			WithDetail("path", file)
	}
	root := doc.SelectElement("Configuration")
	if root == nil {
		return nil, errors.New(errors.ErrParse, "logging configuration has no <Configuration> element").
			WithDetail("path", file)
	}

	cfg := &LoggingConfig{Status: root.SelectAttrValue("status", "")}
	if appenders := root.SelectElement("Appenders"); appenders != nil {
		for _, el := range appenders.ChildElements() {
			cfg.Appenders = append(cfg.Appenders, Appender{
				Type: el.Tag,
				Name: el.SelectAttrValue("name", ""),
			})
		}
	}
	if loggers := root.SelectElement("Loggers"); loggers != nil {
		if rootLogger := loggers.SelectElement("Root"); rootLogger != nil {
			cfg.RootLevel = rootLogger.SelectAttrValue("level", "")
		}
		for _, el := range loggers.SelectElements("Logger") {
			cfg.Loggers = append(cfg.Loggers, el.SelectAttrValue("name", ""))
		}
	}
	return cfg, nil
}
