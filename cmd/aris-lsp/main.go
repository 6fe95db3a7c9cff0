// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"aris/internal/lsp"
)

const lsName = "aris"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	proofHandler := lsp.NewProofHandler()

	handler = protocol.Handler{
		Initialize:            proofHandler.Initialize,
		Initialized:           proofHandler.Initialized,
		Shutdown:              proofHandler.Shutdown,
		TextDocumentDidOpen:   proofHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  proofHandler.TextDocumentDidClose,
		TextDocumentDidChange: proofHandler.TextDocumentDidChange,
		TextDocumentCompletion: proofHandler.TextDocumentCompletion,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("starting aris-lsp", version)

	if err := s.RunStdio(); err != nil {
		log.Println("aris-lsp exited:", err)
		os.Exit(1)
	}
}
