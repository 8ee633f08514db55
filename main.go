package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/caarlos0/env"
	"gopkg.in/yaml.v2"
	"periph.io/x/periph/host"

	"github.com/mandedesign/rangedrive/drive"
	"github.com/mandedesign/rangedrive/drive/hardware"
)

type EnvConfig struct {
	SRCDIR string `env:"SRCDIR" envDefault:"."`
	SIM    bool   `env:"RANGEDRIVE_SIM" envDefault:"0"`
}

func main() {
	simulated := flag.Bool("sim", false, "Run against simulated hardware")
	configPath := flag.String("config", "", "Path to the drive config yaml")
	flag.Parse()

	envCfg := new(EnvConfig)
	env.Parse(envCfg)

	filename := *configPath
	if filename == "" {
		var err error
		filename, err = filepath.Abs(envCfg.SRCDIR + "/drive_config.yaml")
		if err != nil {
			panic(fmt.Sprintf("Unable to find config file: %v", err))
		}
	}

	yamlFile, err := ioutil.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("Unable to read yaml file: %v", err))
	}

	var config drive.Config
	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		panic(fmt.Sprintf("Unable to unmarshal yaml: %v", err))
	}

	config.ApplyDefaults()
	if err = config.Validate(); err != nil {
		panic(fmt.Sprintf("Unable to use config: %v", err))
	}

	var (
		pinger   hardware.Pinger
		fwd, rev hardware.PWMPin
		r, g, b  hardware.PWMPin
		screen   hardware.Screen

		simPinger *drive.SimPinger
	)

	if *simulated || envCfg.SIM {
		fmt.Println("Creating simulated hardware")
		simPinger = drive.NewSimPinger(40)
		pinger = simPinger
		fwd, rev = new(drive.SimPWMPin), new(drive.SimPWMPin)
		r, g, b = new(drive.SimPWMPin), new(drive.SimPWMPin), new(drive.SimPWMPin)
		screen = new(drive.SimScreen)
	} else {
		if _, err = host.Init(); err != nil {
			panic(fmt.Sprintf("Unable to initialize periph host: %v", err))
		}

		if pinger, err = hardware.NewGPIOPinger(config.Sensor.TrigPin, config.Sensor.EchoPin); err != nil {
			panic(fmt.Sprintf("Unable to set up ultrasonic pins: %v", err))
		}
		if fwd, err = hardware.NewGPIOPWMPin(config.Motor.ForwardPin); err != nil {
			panic(fmt.Sprintf("Unable to set up motor pins: %v", err))
		}
		if rev, err = hardware.NewGPIOPWMPin(config.Motor.ReversePin); err != nil {
			panic(fmt.Sprintf("Unable to set up motor pins: %v", err))
		}
		if r, err = hardware.NewGPIOPWMPin(config.LED.RedPin); err != nil {
			panic(fmt.Sprintf("Unable to set up LED pins: %v", err))
		}
		if g, err = hardware.NewGPIOPWMPin(config.LED.GreenPin); err != nil {
			panic(fmt.Sprintf("Unable to set up LED pins: %v", err))
		}
		if b, err = hardware.NewGPIOPWMPin(config.LED.BluePin); err != nil {
			panic(fmt.Sprintf("Unable to set up LED pins: %v", err))
		}

		if config.Screen.Enabled {
			if screen, err = hardware.NewOLEDScreen(config.Screen.I2CBus); err != nil {
				panic(fmt.Sprintf("Unable to set up OLED: %v", err))
			}
		}
	}

	clock := drive.WallClock{}
	sensor := drive.NewRangeSensor(pinger, clock, config.Sensor)
	motor := drive.NewMotor(fwd, rev, config.Motor)
	led := drive.NewStatusLED(r, g, b, clock, config.LED)
	presenter := drive.NewPresenter(screen)

	controller := drive.NewController(sensor, motor, led, presenter, clock, config.Control)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go controller.Run(ctx)

	shell := ishell.New()
	shell.Println("rangedrive development shell")
	shell.AddCmd(&ishell.Cmd{
		Name: "state",
		Help: "show the last control tick",
		Func: func(c *ishell.Context) {
			s := controller.State()
			c.Printf("mode=%s distance=%dcm speed=%d%% err=%v\n", s.Mode, s.DistanceCM, s.SpeedPct, s.Err)
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "error",
		Help: "error <on|off>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Println("usage: error <on|off>")
				return
			}
			controller.SetError(c.Args[0] == "on")
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "brake",
		Help: "short the motor winding",
		Func: func(c *ishell.Context) {
			c.Println("Braking")
			motor.Brake()
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "distance",
		Help: "distance <cm> (simulated hardware only, 0 = clear path)",
		Func: func(c *ishell.Context) {
			if simPinger == nil {
				c.Println("distance is only available with -sim")
				return
			}
			if len(c.Args) != 1 {
				c.Println("usage: distance <cm>")
				return
			}
			cm, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Printf("bad distance %q\n", c.Args[0])
				return
			}
			c.Printf("Setting simulated distance to %dcm\n", cm)
			simPinger.SetDistance(cm)
		},
	})
	shell.Start()
}
