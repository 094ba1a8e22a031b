package helpers

import (
	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
)

// HandleCloseConnections flushes pending turn events and closes NATS.
func HandleCloseConnections(appCnf *config.AppConfig) {
	if appCnf == nil || appCnf.NatsConn == nil {
		return
	}

	if err := appCnf.NatsConn.Flush(); err != nil && appCnf.Logger != nil {
		appCnf.Logger.WithError(err).Warnln("failed to flush NATS connection")
	}
	appCnf.NatsConn.Close()
}
