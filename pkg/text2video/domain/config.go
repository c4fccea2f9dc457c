package domain

// A list of built-in config keys supported by the video service (settings of concrete infrastructure components,
// such as the engine or ffmpeg paths, are declared next to those components).

const (
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyOutputPath where the generated video is saved if the caller doesn't specify a path. The extension
	// selects the container (.mp4, .webm or .gif).
	ConfigKeyOutputPath = "outputPath"
	// ConfigKeyModelID the pretrained text-to-video model to load
	ConfigKeyModelID = "modelID"
	// ConfigKeyLowMemoryThresholdGB if less memory than this (in GB) is available, the user is warned that results
	// may be unstable
	ConfigKeyLowMemoryThresholdGB = "lowMemoryThresholdGB"
	// ConfigKeyNumFrames how many frames the model generates
	ConfigKeyNumFrames = "numFrames"
	// ConfigKeyInferenceSteps the number of denoising steps
	ConfigKeyInferenceSteps = "inferenceSteps"
	// ConfigKeyGuidanceScale how closely the model follows the prompt (classifier-free guidance)
	ConfigKeyGuidanceScale = "guidanceScale"
	// ConfigKeyWidth the width of the video, in pixels (a multiple of 8)
	ConfigKeyWidth = "width"
	// ConfigKeyHeight the height of the video, in pixels (a multiple of 8)
	ConfigKeyHeight = "height"
	// ConfigKeyFPS frames per second of the exported video
	ConfigKeyFPS = "fps"
	// ConfigKeySeed the random seed, for reproducible results
	ConfigKeySeed = "seed"
	// ConfigKeyLockTimeout how long to wait (in milliseconds) for another running generation on the same machine
	// to finish before giving up
	ConfigKeyLockTimeout = "lockTimeout"
)
