package stt_test

import (
	"github.com/voxscribe/server/adapters/stt"
	"github.com/voxscribe/server/domain/repositories"
)

var _ repositories.SpeechToText = &stt.GoogleSpeechToText{}
