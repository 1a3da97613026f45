package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ProjectGhostOS/aware/lib/aware"
	"github.com/ProjectGhostOS/aware/lib/config"
	"github.com/ProjectGhostOS/aware/lib/engine"
	"github.com/ProjectGhostOS/aware/lib/util"
	"github.com/ProjectGhostOS/aware/lib/util/logger"
	"github.com/ProjectGhostOS/aware/lib/util/signals"
)

var log = logger.GetLogger()

func main() {
	cfgFile := flag.String("config", "", "Path to the gate config file")
	maxClients := flag.Int("maxClients", 0, "Override the concurrent client limit")
	flag.Parse()

	config.CfgFile = *cfgFile
	config.InitConfig()

	gateCfg := config.NewAwareConfigFromViper()
	if *maxClients > 0 {
		gateCfg.MaxClients = *maxClients
	}
	if gateCfg.VerboseLogging {
		log.SetOutput(os.Stdout)
		log.SetLevel(logrus.DebugLevel)
	}

	go signals.Handle()
	log.Debug("starting up aware discovery gate")

	// The daemon wires the gate against the in-process development engine
	// and policy; production hosts embed lib/aware against their own
	// StateManager and PermissionChecker bindings.
	svc, err := aware.NewService(engine.NewInMemory(nil), engine.NewStaticPolicy(), &aware.ServiceConfig{
		RTTSupported:     gateCfg.RTTSupported,
		MaxClients:       gateCfg.MaxClients,
		ConnectRateLimit: gateCfg.ConnectRateLimit,
		ConnectRateBurst: gateCfg.ConnectRateBurst,
	})
	if err != nil {
		log.Errorf("failed to create aware service: %s", err)
		return
	}

	chars := svc.Characteristics()
	log.Debugf("gate up: maxServiceName=%d maxSsi=%d maxMatchFilter=%d",
		chars.MaxServiceNameLength, chars.MaxServiceSpecificInfoLength, chars.MaxMatchFilterLength)

	done := make(chan struct{})
	signals.RegisterReloadHandler(func() {
		// TODO: re-read gate limits from the config file
	})
	signals.RegisterPreShutdownHandler(func() {
		log.Debugf("shutting down with %d live clients", svc.Registry().Size())
	})
	signals.RegisterInterruptHandler(func() {
		util.CloseAll()
		close(done)
	})
	<-done
}
