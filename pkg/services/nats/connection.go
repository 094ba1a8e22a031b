package natsservice

import (
	"fmt"
	"strings"

	"github.com/mynaparrot/plugnmeet-tutor/pkg/config"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
	"github.com/sirupsen/logrus"
)

// NewNatsConnection connects with either an nkey seed or user/password.
func NewNatsConnection(info *config.NatsInfo, logger *logrus.Logger) (*nats.Conn, error) {
	var opt nats.Option
	var err error

	if info.Nkey != nil {
		opt, err = NkeyOptionFromSeed(*info.Nkey)
		if err != nil {
			return nil, err
		}
	} else {
		opt = nats.UserInfo(info.User, info.Password)
	}

	nc, err := nats.Connect(strings.Join(info.NatsUrls, ","), opt, nats.Name("plugnmeet-tutor"))
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"version": nc.ConnectedServerVersion(),
		"address": nc.ConnectedAddr(),
	}).Info("successfully connected to NATS server")

	return nc, nil
}

// NkeyOptionFromSeed signs the server nonce with the user seed.
func NkeyOptionFromSeed(seed string) (nats.Option, error) {
	kp, err := nkeys.FromSeed([]byte(strings.TrimSpace(seed)))
	if err != nil {
		return nil, fmt.Errorf("invalid nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, err
	}
	if !nkeys.IsValidPublicUserKey(pub) {
		return nil, fmt.Errorf("nkey seed is not a user seed")
	}

	return nats.Nkey(pub, func(nonce []byte) ([]byte, error) {
		return kp.Sign(nonce)
	}), nil
}
