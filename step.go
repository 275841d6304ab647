package devtalk

// Step advances a stream by one input and returns the new state together with
// the side effects the caller must run, in order.
//
// Step is pure: it performs no I/O and never blocks. Inputs that do not fit
// the current phase, such as a delta after done or a second cancel, leave the
// state unchanged and produce no effects.
func Step(s StreamState, in Input) (StreamState, []Effect) {
	switch in := in.(type) {
	case InputOpen:
		return open(s, in)
	case EventStart:
		if s.Phase != PhaseAwaitingFirstByte {
			return s, nil
		}
		s.Phase = PhaseStreaming
		return s, nil
	case EventDelta:
		if s.Phase != PhaseStreaming || in.Text == "" {
			return s, nil
		}
		s.Pending.Push(in.Text, s.ChunkSize)
		return s, []Effect{EffectArmTicker{}}
	case EventDone:
		return done(s, in.Done)
	case EventError:
		return fail(s, in.Err)
	case InputTick:
		return tick(s)
	case InputCancel:
		return cancel(s)
	case InputReconciled:
		if s.Phase != PhaseFinalizing {
			return s, nil
		}
		s.Phase = PhaseCompleted
		s.Buffer = ""
		return s, []Effect{EffectReplaceTranscript{Messages: in.Messages}}
	case InputReconcileFailed:
		if s.Phase != PhaseFinalizing {
			return s, nil
		}
		// The stream itself succeeded, so keep what was shown.
		s.Phase = PhaseCompleted
		if s.Buffer == "" {
			return s, nil
		}
		return s, []Effect{EffectSynthesizeReply{Content: s.Buffer, MessageID: s.doneMessageID()}}
	}
	return s, nil
}

func open(s StreamState, in InputOpen) (StreamState, []Effect) {
	if s.Phase.Live() {
		return s, nil
	}
	req := GenerateRequest{SessionID: in.SessionID, ReplyTo: in.TargetMessageID}
	if err := req.Validate(); err != nil {
		return s, nil
	}
	size := in.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	next := StreamState{
		Seq:             s.Seq + 1,
		Phase:           PhaseAwaitingFirstByte,
		SessionID:       in.SessionID,
		TargetMessageID: in.TargetMessageID,
		ChunkSize:       size,
	}
	return next, []Effect{EffectOpenStream{Request: req}}
}

func done(s StreamState, d Done) (StreamState, []Effect) {
	if s.Phase != PhaseStreaming {
		return s, nil
	}
	s.Done = &d
	if s.Pending.Empty() {
		s.Phase = PhaseFinalizing
		return s, []Effect{
			EffectCloseStream{},
			EffectStopTicker{},
			EffectReconcile{SessionID: s.SessionID},
		}
	}
	s.Phase = PhaseDraining
	return s, []Effect{EffectCloseStream{}}
}

func tick(s StreamState) (StreamState, []Effect) {
	if s.Phase != PhaseStreaming && s.Phase != PhaseDraining {
		return s, nil
	}
	if chunk, ok := s.Pending.Pop(); ok {
		s.Buffer += chunk
	}
	if !s.Pending.Empty() {
		return s, []Effect{EffectArmTicker{}}
	}
	if s.Phase == PhaseDraining {
		s.Phase = PhaseFinalizing
		return s, []Effect{
			EffectStopTicker{},
			EffectReconcile{SessionID: s.SessionID},
		}
	}
	return s, nil
}

func cancel(s StreamState) (StreamState, []Effect) {
	if !s.Phase.Live() {
		return s, nil
	}
	s.Phase = PhaseCancelled
	s.Pending.Clear()
	effects := []Effect{EffectCloseStream{}, EffectStopTicker{}}
	if s.Buffer != "" {
		effects = append(effects, EffectSynthesizeReply{Content: s.Buffer})
	}
	return s, effects
}

func fail(s StreamState, err error) (StreamState, []Effect) {
	switch s.Phase {
	case PhaseAwaitingFirstByte, PhaseStreaming, PhaseDraining:
	default:
		return s, nil
	}
	s.Phase = PhaseFailed
	s.Err = err
	s.Buffer = ""
	s.Pending.Clear()
	return s, []Effect{
		EffectCloseStream{},
		EffectStopTicker{},
		EffectNotifyFailure{Err: err},
	}
}

func (s StreamState) doneMessageID() string {
	if s.Done == nil {
		return ""
	}
	return s.Done.MessageID
}
