package planning

import (
	"github.com/DenizcanArslan/VDTMSv2-sub001/store"
)

// CutTransport splits a transport: the original keeps everything done so far
// and is completed, and a new CUT segment is created carrying the equipment
// named by cutType (container, trailer or both) plus the order identity. The
// segment stays parked at the cut location until it is restored or deleted.
func (s *Service) CutTransport(transportID int64, cutDate, cutType, location, notes string) (*store.TransportDetail, *store.TransportDetail, error) {
	if err := checkDate(cutDate); err != nil {
		return nil, nil, err
	}
	switch cutType {
	case store.CutContainer, store.CutTrailer, store.CutBoth:
	default:
		return nil, nil, invalidf("cut type must be CONTAINER, TRAILER or BOTH, got %q", cutType)
	}
	var segID int64
	var affected []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		root, err := getTransport(tx, transportID)
		if err != nil {
			return err
		}
		if affected, err = assignmentDates(tx, root.ID); err != nil {
			return err
		}
		if root.IsCut {
			unresolved, err := hasUnresolvedSegments(tx, root.ID, 0)
			if err != nil {
				return err
			}
			if unresolved {
				return conflictf("transport %s already has an unresolved cut segment", root.OrderNumber)
			}
		}
		seg := &store.Transport{
			OrderNumber:         root.OrderNumber,
			ClientRef:           root.ClientRef,
			BookingReference:    root.BookingReference,
			TransportType:       root.TransportType,
			Status:              root.Status,
			CurrentStatus:       store.CurrentCut,
			IsCut:               true,
			OriginalTransportID: &root.ID,
		}
		if cutType == store.CutContainer || cutType == store.CutBoth {
			seg.ContainerNumber = root.ContainerNumber
			seg.LoadingUnloadingReference = root.LoadingUnloadingReference
		}
		if cutType == store.CutTrailer || cutType == store.CutBoth {
			seg.TrailerID = root.TrailerID
		}
		if err := tx.CreateTransport(seg); err != nil {
			return err
		}
		info := &store.CutInfo{
			TransportID:  seg.ID,
			CutType:      cutType,
			CutStartDate: cutDate,
			Location:     location,
			Notes:        notes,
		}
		if err := tx.CreateCutInfo(info); err != nil {
			return err
		}
		root.IsCut = true
		root.CurrentStatus = store.CurrentCompleted
		if err := tx.UpdateTransport(root); err != nil {
			return err
		}
		segID = seg.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	rootTD, err := s.db.GetTransportDetail(transportID)
	if err != nil {
		return nil, nil, err
	}
	segTD, err := s.db.GetTransportDetail(segID)
	if err != nil {
		return nil, nil, err
	}
	s.bus.Emit(Change{
		Kind:    ChangeTransportCreated,
		Date:    cutDate,
		Dates:   affected,
		Created: []*store.TransportDetail{segTD},
		Updated: []*store.TransportDetail{rootTD},
	})
	return rootTD, segTD, nil
}

// RestoreTransport resumes a cut segment: the cut window is closed on its cut
// info, the segment is marked restored, and a fresh SHUNT transport is created
// to move the equipment onward from the cut location on cutEndDate. Only the
// equipment the cut type put aside travels to the new transport; truckID and
// trailerID (0 to skip) attach replacement equipment.
func (s *Service) RestoreTransport(segmentID int64, cutEndDate string, truckID, trailerID int64, notes string) (*store.TransportDetail, *store.TransportDetail, error) {
	if err := checkDate(cutEndDate); err != nil {
		return nil, nil, err
	}
	var restoredID, rootID int64
	var rootCleared bool
	var affected []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		seg, err := getTransport(tx, segmentID)
		if err != nil {
			return err
		}
		if seg.OriginalTransportID == nil || seg.CurrentStatus != store.CurrentCut {
			return notFoundf("transport %d is not a cut segment", segmentID)
		}
		if seg.IsRestored {
			return conflictf("cut segment %d is already restored", segmentID)
		}
		if affected, err = assignmentDates(tx, seg.ID); err != nil {
			return err
		}
		info, err := tx.GetCutInfoByTransport(seg.ID)
		if err != nil {
			return err
		}
		mergedNotes := info.Notes
		if notes != "" {
			if mergedNotes != "" {
				mergedNotes += "\n"
			}
			mergedNotes += notes
		}
		if err := tx.CloseCutInfo(seg.ID, cutEndDate, mergedNotes); err != nil {
			return err
		}
		if err := tx.SetTransportRestored(seg.ID); err != nil {
			return err
		}
		restored := &store.Transport{
			OrderNumber:         seg.OrderNumber,
			ClientRef:           seg.ClientRef,
			BookingReference:    seg.BookingReference,
			TransportType:       store.TypeShunt,
			Status:              seg.Status,
			CurrentStatus:       store.CurrentPlanned,
			OriginalTransportID: seg.OriginalTransportID,
		}
		if info.CutType == store.CutContainer || info.CutType == store.CutBoth {
			restored.ContainerNumber = seg.ContainerNumber
			restored.LoadingUnloadingReference = seg.LoadingUnloadingReference
		}
		if info.CutType == store.CutTrailer || info.CutType == store.CutBoth {
			restored.TrailerID = seg.TrailerID
		}
		if truckID != 0 {
			restored.TruckID = &truckID
		}
		if trailerID != 0 {
			restored.TrailerID = &trailerID
		}
		if err := tx.CreateTransport(restored); err != nil {
			return err
		}
		dest := &store.Destination{
			TransportID: restored.ID,
			Order:       1,
			Date:        cutEndDate,
			Location:    info.Location,
		}
		if err := tx.CreateDestination(dest); err != nil {
			return err
		}
		rootID = *seg.OriginalTransportID
		unresolved, err := hasUnresolvedSegments(tx, rootID, 0)
		if err != nil {
			return err
		}
		if !unresolved {
			if err := tx.SetTransportCut(rootID, false); err != nil {
				return err
			}
			rootCleared = true
			rootDates, err := assignmentDates(tx, rootID)
			if err != nil {
				return err
			}
			affected = append(affected, rootDates...)
		}
		restoredID = restored.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	segTD, err := s.db.GetTransportDetail(segmentID)
	if err != nil {
		return nil, nil, err
	}
	restoredTD, err := s.db.GetTransportDetail(restoredID)
	if err != nil {
		return nil, nil, err
	}
	updated := []*store.TransportDetail{segTD}
	if rootCleared {
		if rootTD, err := s.db.GetTransportDetail(rootID); err == nil {
			updated = append(updated, rootTD)
		}
	}
	s.bus.Emit(Change{
		Kind:    ChangeTransportUpdated,
		Date:    cutEndDate,
		Dates:   affected,
		Created: []*store.TransportDetail{restoredTD},
		Updated: updated,
	})
	return segTD, restoredTD, nil
}

// DeleteCutSegment removes an unrestored cut segment outright, along with its
// cut info, destinations and assignments. When the segment was the last
// unresolved one its root gets isCut cleared so it can be cut again.
func (s *Service) DeleteCutSegment(segmentID int64) error {
	var rootID int64
	var rootCleared bool
	var affected []string
	err := s.db.WithTx(func(tx *store.Tx) error {
		seg, err := getTransport(tx, segmentID)
		if err != nil {
			return err
		}
		if seg.OriginalTransportID == nil || seg.CurrentStatus != store.CurrentCut {
			return notFoundf("transport %d is not a cut segment", segmentID)
		}
		// collected before the rows are gone
		if affected, err = assignmentDates(tx, seg.ID); err != nil {
			return err
		}
		if err := tx.DeleteCutInfoByTransport(seg.ID); err != nil {
			return err
		}
		if err := tx.DeleteDestinationsByTransport(seg.ID); err != nil {
			return err
		}
		if err := tx.DeleteAssignmentsByTransport(seg.ID); err != nil {
			return err
		}
		if err := tx.DeleteTransport(seg.ID); err != nil {
			return err
		}
		rootID = *seg.OriginalTransportID
		unresolved, err := hasUnresolvedSegments(tx, rootID, seg.ID)
		if err != nil {
			return err
		}
		if !unresolved {
			if err := tx.SetTransportCut(rootID, false); err != nil {
				return err
			}
			rootCleared = true
			rootDates, err := assignmentDates(tx, rootID)
			if err != nil {
				return err
			}
			affected = append(affected, rootDates...)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ch := Change{
		Kind:       ChangeTransportDeleted,
		Dates:      affected,
		RemovedIDs: []int64{segmentID},
	}
	if rootCleared {
		if rootTD, err := s.db.GetTransportDetail(rootID); err == nil {
			ch.Updated = []*store.TransportDetail{rootTD}
			ch.Date = rootTD.DepartureDate
		}
	}
	s.bus.Emit(ch)
	return nil
}

// hasUnresolvedSegments reports whether the root still has a live CUT segment
// awaiting restore. skipID excludes a segment being resolved in the same
// transaction.
func hasUnresolvedSegments(tx *store.Tx, rootID, skipID int64) (bool, error) {
	segs, err := tx.ListCutSegments(rootID)
	if err != nil {
		return false, err
	}
	for _, seg := range segs {
		if seg.ID == skipID {
			continue
		}
		if seg.CurrentStatus == store.CurrentCut && !seg.IsRestored {
			return true, nil
		}
	}
	return false, nil
}
