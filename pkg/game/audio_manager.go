package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	// PopFrequency 礼花“啪”声的起始频率（Hz）
	PopFrequency = 880.0
	// PopDuration 礼花“啪”声的时长（秒）
	PopDuration = 0.08
)

// AudioManager 音频管理器
// 每个爆发播放一次合成的短促“啪”声，不依赖音频文件
type AudioManager struct {
	context *audio.Context
	pop     []byte // 16-bit 立体声 PCM（little endian）
	volume  float64
	muted   bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（此时所有播放调用都会返回 false）
func NewAudioManager(ctx *audio.Context) *AudioManager {
	am := &AudioManager{
		context: ctx,
		volume:  0.5,
	}
	if ctx != nil {
		am.pop = SynthesizePop(ctx.SampleRate(), PopFrequency, PopDuration)
	}
	return am
}

// PlayPop 播放一次爆发音效
// 返回是否成功播放
func (am *AudioManager) PlayPop() bool {
	if am.context == nil || am.muted || len(am.pop) == 0 {
		return false
	}

	player := am.context.NewPlayerFromBytes(am.pop)
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	log.Printf("[AudioManager] muted=%v", muted)
}

// IsMuted 返回是否静音
func (am *AudioManager) IsMuted() bool {
	return am.muted
}

// SetVolume 设置音量（0.0 - 1.0，超出范围会被截断）
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// GetVolume 返回当前音量
func (am *AudioManager) GetVolume() float64 {
	return am.volume
}

// SynthesizePop 生成一段指数衰减、频率下滑的正弦波
// 输出为 16-bit 有符号立体声 PCM，与 audio.Context 的格式一致
func SynthesizePop(sampleRate int, frequency, duration float64) []byte {
	if sampleRate <= 0 || duration <= 0 {
		return nil
	}

	n := int(float64(sampleRate) * duration)
	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(n)

		// 频率从 frequency 下滑到一半
		f := frequency * (1 - 0.5*progress)
		phase += 2 * math.Pi * f / float64(sampleRate)

		envelope := math.Exp(-t * 40)
		v := int16(math.Sin(phase) * envelope * 0.6 * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
