package arspawn

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "arspawn")

// SetLogger replaces the package logger used by systems that were not given their own.
func SetLogger(l *logrus.Entry) {
	if l == nil {
		l = logrus.WithField("pkg", "arspawn")
	}
	log = l
}

func entryOr(l *logrus.Entry, system string) *logrus.Entry {
	if l != nil {
		return l
	}
	return log.WithField("system", system)
}
